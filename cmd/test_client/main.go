package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP stream endpoint")
	query := flag.String("query", "developer", "query for job_fetch")
	doSync := flag.Bool("sync", false, "also call webflow_sync (writes to Webflow)")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobsync-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testJobFetch(ctx, session, *query)
	testJobList(ctx, session)
	if *doSync {
		testWebflowSync(ctx, session)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testJobFetch(ctx context.Context, session *mcp.ClientSession, query string) {
	fmt.Println("\nTEST: job_fetch")
	call(ctx, session, "job_fetch", map[string]any{"query": query})
}

func testJobList(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_list")
	call(ctx, session, "job_list", map[string]any{"limit": 5})
}

func testWebflowSync(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: webflow_sync")
	call(ctx, session, "webflow_sync", map[string]any{"include_outcomes": true})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		log.Printf("%s returned a tool error", name)
	}

	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
