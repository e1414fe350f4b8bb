// Package main is the entry point for the books API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/books-api/internal/data"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs and in the
// root endpoint's welcome payload.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via command-line flags.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	apiKey      string // Shared secret required on mutating endpoints (X-API-Key header)
	db          struct {
		dsn string // PostgreSQL Data Source Name (connection string)
	}
	limiter struct {
		rps     float64 // Sustained requests per second per client IP
		burst   int     // Burst capacity per client IP
		enabled bool    // Turn rate limiting off entirely (tests, local runs)
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
// Holding the API key here, rather than in a package-level variable, means the
// credential check always reads an explicitly injected value.
type applicationDependencies struct {
	config serverConfig // Server configuration loaded from flags
	logger *slog.Logger // Structured logger that writes to stdout
	models data.Models  // Database model layer for all tables
}

// main parses flags, opens the database, wires up dependencies, and starts
// the HTTP server via serve().
func main() {
	var settings serverConfig

	// Register command-line flags so operators can override defaults at runtime.
	// Secrets default to environment variables so they stay out of process listings.
	flag.IntVar(&settings.port, "port", 4000, "Server port")
	flag.StringVar(&settings.environment, "env", "development", "Environment(development|staging|production)")
	flag.StringVar(&settings.apiKey, "api-key", os.Getenv("BOOKS_API_KEY"), "API key required on mutating endpoints")
	flag.StringVar(&settings.db.dsn, "db-dsn", os.Getenv("BOOKS_DB_DSN"), "PostgreSQL DSN")

	flag.Float64Var(&settings.limiter.rps, "limiter-rps", 2, "Rate limiter requests per second per IP")
	flag.IntVar(&settings.limiter.burst, "limiter-burst", 4, "Rate limiter burst per IP")
	flag.BoolVar(&settings.limiter.enabled, "limiter-enabled", true, "Enable per-IP rate limiting")

	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Refuse to start without a credential: every mutating endpoint would
	// otherwise be unreachable (or worse, guessably empty-string protected).
	if settings.apiKey == "" {
		logger.Error("api key must be set via -api-key or BOOKS_API_KEY")
		os.Exit(1)
	}

	// Open and verify the database connection pool.
	db, err := openDB(settings)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established")

	// Ensure the books table exists before serving any traffic.
	if err := data.Migrate(db); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Bundle all shared dependencies into a single struct.
	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db),
	}

	if err := appInstance.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openDB opens a PostgreSQL connection pool using the DSN stored in settings,
// then pings the database with a 5-second timeout to confirm it is reachable.
// Returns the pool on success, or an error if the connection cannot be established.
func openDB(settings serverConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", settings.db.dsn)
	if err != nil {
		return nil, err
	}

	// Create a context that cancels automatically after 5 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
