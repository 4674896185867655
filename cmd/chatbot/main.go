package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tasklane/chatbot/internal/api"
	"github.com/tasklane/chatbot/internal/flow"
	"github.com/tasklane/chatbot/internal/genai"
	"github.com/tasklane/chatbot/internal/store"
	"github.com/tasklane/chatbot/internal/util"
)

// Default configuration constants
const (
	// DefaultAPIAddr is the default listen address for the chat API
	DefaultAPIAddr = ":8080"
)

// Config holds environment configuration. Values are read from the process
// environment with the CHATBOT_ prefix (e.g. CHATBOT_ADDR, CHATBOT_DATABASE_URL).
type Config struct {
	Addr           string        `envconfig:"ADDR"`
	DBDriver       string        `envconfig:"DB_DRIVER"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	OpenAIKey      string        `envconfig:"OPENAI_API_KEY"`
	RewriteTimeout time.Duration `envconfig:"REWRITE_TIMEOUT"`
}

// Flags holds command line flag values
type Flags struct {
	addr      *string
	dbDriver  *string
	dbDSN     *string
	openaiKey *string
}

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Build the exchange store
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize exchange store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Build the optional reply rewriter
	rewriter := buildRewriter(flags, config)

	addr := *flags.addr
	if addr == "" {
		addr = DefaultAPIAddr
	}

	slog.Info("Bootstrapping chatbot service", "addr", addr, "rewriter_enabled", rewriter != nil)
	server := api.NewServer(flow.NewRouter(), rewriter, st)
	if err := server.Run(addr); err != nil {
		slog.Error("Chatbot service failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Chatbot service exited successfully")
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	var config Config
	if err := envconfig.Process("chatbot", &config); err != nil {
		slog.Error("Failed to process environment configuration", "error", err)
		os.Exit(1)
	}

	slog.Debug("environment variables loaded",
		"CHATBOT_ADDR", config.Addr,
		"CHATBOT_DB_DRIVER", config.DBDriver,
		"CHATBOT_DATABASE_URL_SET", config.DatabaseURL != "",
		"CHATBOT_OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"CHATBOT_REWRITE_TIMEOUT", config.RewriteTimeout)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		addr:      flag.String("addr", config.Addr, "API server address (overrides $CHATBOT_ADDR)"),
		dbDriver:  flag.String("db-driver", config.DBDriver, "exchange store driver: memory, sqlite, or postgres (overrides $CHATBOT_DB_DRIVER)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "database DSN for the exchange store (overrides $CHATBOT_DATABASE_URL)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for reply rewriting (overrides $CHATBOT_OPENAI_API_KEY)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"addr", *flags.addr,
		"dbDriver", *flags.dbDriver,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "")

	return flags
}

// buildStore selects and initializes the exchange store. An empty driver is
// inferred from the DSN: postgres for PostgreSQL URLs, sqlite for file paths,
// in-memory when no DSN is configured.
func buildStore(flags Flags) (store.Store, error) {
	driver := *flags.dbDriver
	dsn := *flags.dbDSN
	if driver == "" {
		switch {
		case strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host="):
			driver = "postgres"
		case dsn != "":
			driver = "sqlite"
		default:
			driver = "memory"
		}
		slog.Debug("No store driver configured, inferred from DSN", "driver", driver)
	}

	switch driver {
	case "postgres":
		slog.Debug("Configuring PostgreSQL exchange store", "dsn_set", dsn != "")
		return store.NewPostgresStore(store.WithDSN(dsn))
	case "sqlite":
		slog.Debug("Configuring SQLite exchange store", "db_path", dsn)
		return store.NewSQLiteStore(store.WithDSN(dsn))
	default:
		slog.Debug("Using in-memory exchange store")
		return store.NewInMemoryStore(), nil
	}
}

// buildRewriter constructs the GenAI reply rewriter when an API key is
// configured and rewriting is not switched off. Without it the service
// runs fully deterministic.
func buildRewriter(flags Flags, config Config) *genai.Rewriter {
	if !util.ParseBoolEnv("CHATBOT_REWRITE_ENABLED", true) {
		slog.Info("Reply rewriting disabled via CHATBOT_REWRITE_ENABLED")
		return nil
	}
	if *flags.openaiKey == "" {
		slog.Debug("No OpenAI API key configured, reply rewriting disabled")
		return nil
	}
	client, err := genai.NewClient(*flags.openaiKey)
	if err != nil {
		slog.Warn("Failed to initialize GenAI client, reply rewriting disabled", "error", err)
		return nil
	}
	return genai.NewRewriter(client, config.RewriteTimeout)
}
