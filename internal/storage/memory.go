package storage

import (
	"sync"

	"github.com/crisisml/disaster-response/internal/dataset"
)

// MemoryStore keeps the dataset in process memory. Used by tests and small
// experiments; the save/load contract matches the database backends.
type MemoryStore struct {
	mu         sync.RWMutex
	rows       []dataset.Row
	categories []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveDataset(rows []dataset.Row, categories []string) error {
	if len(rows) == 0 {
		return dataset.ErrEmptyDataset
	}
	for _, r := range rows {
		if len(r.Labels) != len(categories) {
			return &dataset.ShapeError{What: "row labels", Want: len(categories), Got: len(r.Labels)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replace semantics, same as dropping and recreating the table.
	s.rows = make([]dataset.Row, len(rows))
	copy(s.rows, rows)
	s.categories = make([]string, len(categories))
	copy(s.categories, categories)
	return nil
}

func (s *MemoryStore) LoadDataset() ([]dataset.Row, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return nil, nil, dataset.ErrEmptyDataset
	}
	if len(s.categories) != dataset.CategoryCount {
		return nil, nil, &dataset.ShapeError{What: "category columns", Want: dataset.CategoryCount, Got: len(s.categories)}
	}

	rows := make([]dataset.Row, len(s.rows))
	copy(rows, s.rows)
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return rows, categories, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
