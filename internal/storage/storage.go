package storage

import (
	"strings"

	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/dataset"
)

// TableName is the relation holding the cleaned dataset. Saving replaces any
// prior table of this name.
const TableName = "messages_categories"

// Store persists and reloads the cleaned dataset. The saved relation carries
// id, message, original, genre followed by the 36 category columns.
type Store interface {
	SaveDataset(rows []dataset.Row, categories []string) error
	LoadDataset() ([]dataset.Row, []string, error)
	Close() error
}

// Open picks a backend from the dataset location: a postgres URL selects
// PostgreSQL, anything else is treated as a sqlite database file path.
func Open(location string, logger *zap.Logger) (Store, error) {
	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") {
		return NewPostgresStore(location, logger)
	}
	return NewSQLiteStore(location, logger)
}
