package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresStore persists the dataset to a PostgreSQL database, selected by
// passing a postgres:// URL as the dataset location.
type PostgresStore struct {
	dbStore
}

func NewPostgresStore(databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	connStr, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	logger.Info("Using PostgreSQL storage")
	return &PostgresStore{dbStore{
		db:           db,
		logger:       logger,
		placeholders: dollarPlaceholders,
	}}, nil
}

func parseDatabaseURL(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", err
	}

	password, _ := u.User.Password()
	port := "5432" // default PostgreSQL port
	if u.Port() != "" {
		port = u.Port()
	}

	sslMode := "disable"
	if m := u.Query().Get("sslmode"); m != "" {
		sslMode = m
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		u.Hostname(), port, u.User.Username(), password, dbName, sslMode), nil
}
