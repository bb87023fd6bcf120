package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/secrets"
)

func TestTokenSetFromStdin(t *testing.T) {
	keyring.MockInit()
	t.Cleanup(func() { tokenValue = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("wf-secret\n"))
	rootCmd.SetArgs([]string{"token", "set", "default"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `Token stored for "default"`)

	tok, err := secrets.WebflowToken("", "default")
	require.NoError(t, err)
	assert.Equal(t, "wf-secret", tok)
}

func TestTokenSetRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	t.Cleanup(func() { tokenValue = "" })

	rootCmd.SetIn(strings.NewReader("\n"))
	rootCmd.SetArgs([]string{"token", "set", "default"})

	require.Error(t, rootCmd.Execute())
}

func TestNeedsResources(t *testing.T) {
	assert.True(t, needsResources(syncCmd))
	assert.True(t, needsResources(fetchCmd))
	assert.False(t, needsResources(tokenSetCmd))
	assert.False(t, needsResources(rootCmd))
}

func TestPrintSyncResult(t *testing.T) {
	res := domain.SyncResult{
		CollectionID: "c-1",
		Existing:     4,
		Created:      1,
		Failed:       1,
		PublishError: "forbidden",
		Outcomes: []domain.ItemOutcome{
			{ReferenceID: "A", Title: "Go dev", State: domain.ItemCreated},
			{ReferenceID: "B", Title: "SRE", State: domain.ItemFailed, Error: "validation"},
		},
	}

	var quiet bytes.Buffer
	printSyncResult(&quiet, res, false)
	assert.Contains(t, quiet.String(), "4 existing, 1 created, 0 skipped, 1 failed")
	assert.Contains(t, quiet.String(), "Publish failed: forbidden")
	assert.NotContains(t, quiet.String(), "Go dev")

	var verbose bytes.Buffer
	printSyncResult(&verbose, res, true)
	assert.Contains(t, verbose.String(), "Go dev")
	assert.Contains(t, verbose.String(), ": validation")
}
