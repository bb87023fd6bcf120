package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers
const (
	StoreNeo4j  = "neo4j"
	StoreSQLite = "sqlite"
)

// Config contains runtime settings for the sync service
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	StoreDriver string // neo4j or sqlite
	SQLitePath  string

	Adzuna struct {
		AppID    string
		AppKey   string
		Country  string
		Query    string
		Location string
	} // Adzuna API credentials and the startup search
	Neo4j struct {
		URI      string
		Username string
		Password string
	}
	Webflow struct {
		APIToken          string
		KeyringAccount    string
		SiteID            string
		CollectionID      string
		CollectionName    string
		DomainIDs         []string
		RequestsPerSecond float64
		FailClosed        bool
	}

	SyncLockPath          string
	SheetsCredentialsPath string
}

// AdzunaEnabled reports whether upstream credentials are present
func (c Config) AdzunaEnabled() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel:    "info",
		Host:        "0.0.0.0",
		Port:        "8080",
		StoreDriver: StoreNeo4j,
		SQLitePath:  "jobsync.db",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.StoreDriver = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.Country = envOr("ADZUNA_COUNTRY", "us")
	cfg.Adzuna.Query = envOr("ADZUNA_QUERY", "developer")
	cfg.Adzuna.Location = os.Getenv("ADZUNA_LOCATION")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Webflow.APIToken = os.Getenv("WEBFLOW_API_TOKEN")
	cfg.Webflow.KeyringAccount = os.Getenv("WEBFLOW_KEYRING_ACCOUNT")
	cfg.Webflow.SiteID = os.Getenv("WEBFLOW_SITE_ID")
	cfg.Webflow.CollectionID = os.Getenv("WEBFLOW_COLLECTION_ID")
	cfg.Webflow.CollectionName = envOr("WEBFLOW_COLLECTION_NAME", "Jobs")

	domains := os.Getenv("WEBFLOW_DOMAIN_IDS")
	if domains == "" {
		domains = os.Getenv("WEBFLOW_DOMAIN_ID")
	}
	cfg.Webflow.DomainIDs = splitList(domains)

	cfg.SyncLockPath = os.Getenv("SYNC_LOCK_PATH")
	cfg.SheetsCredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var invalid []string

	cfg.Webflow.RequestsPerSecond = 1
	if v := os.Getenv("WEBFLOW_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			invalid = append(invalid, "WEBFLOW_REQUESTS_PER_SECOND")
		} else {
			cfg.Webflow.RequestsPerSecond = rps
		}
	}

	if v := os.Getenv("WEBFLOW_FAIL_CLOSED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, "WEBFLOW_FAIL_CLOSED")
		} else {
			cfg.Webflow.FailClosed = b
		}
	}

	var missingVars []string

	switch cfg.StoreDriver {
	case StoreNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	case StoreSQLite:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	if cfg.Webflow.SiteID == "" {
		missingVars = append(missingVars, "WEBFLOW_SITE_ID")
	}

	if cfg.Webflow.APIToken == "" && cfg.Webflow.KeyringAccount == "" {
		missingVars = append(missingVars, "WEBFLOW_API_TOKEN")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
