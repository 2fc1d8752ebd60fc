package storage

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the dataset to a sqlite database file.
type SQLiteStore struct {
	dbStore
}

func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	logger.Info("Using sqlite storage", zap.String("path", path))
	return &SQLiteStore{dbStore{
		db:           db,
		logger:       logger,
		placeholders: questionPlaceholders,
	}}, nil
}
