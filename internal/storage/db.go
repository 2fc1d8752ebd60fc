package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/dataset"
)

// dbStore is the database/sql implementation shared by the sqlite and
// postgres backends; they differ only in driver and placeholder style.
type dbStore struct {
	db           *sql.DB
	logger       *zap.Logger
	placeholders func(n int) string
}

func (s *dbStore) SaveDataset(rows []dataset.Row, categories []string) error {
	if len(rows) == 0 {
		return dataset.ErrEmptyDataset
	}
	for _, r := range rows {
		if len(r.Labels) != len(categories) {
			return &dataset.ShapeError{What: "row labels", Want: len(categories), Got: len(r.Labels)}
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(TableName))); err != nil {
		return fmt.Errorf("error dropping existing table: %w", err)
	}
	if _, err := tx.Exec(createTableSQL(categories)); err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL(categories, s.placeholders))
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		args := make([]any, 0, 4+len(categories))
		args = append(args, r.ID, r.Message, r.Original, r.Genre)
		for _, v := range r.Labels {
			args = append(args, v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("error inserting row id=%d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing dataset: %w", err)
	}
	s.logger.Info("Dataset saved",
		zap.String("table", TableName),
		zap.Int("rows", len(rows)),
		zap.Int("categories", len(categories)))
	return nil
}

func (s *dbStore) LoadDataset() ([]dataset.Row, []string, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(TableName)))
	if err != nil {
		return nil, nil, fmt.Errorf("error querying dataset: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading columns: %w", err)
	}
	if len(cols) < 4 {
		return nil, nil, fmt.Errorf("table %s has %d columns, expected message columns plus categories", TableName, len(cols))
	}
	categories := cols[4:]
	if len(categories) != dataset.CategoryCount {
		return nil, nil, &dataset.ShapeError{What: "category columns", Want: dataset.CategoryCount, Got: len(categories)}
	}

	var out []dataset.Row
	for rows.Next() {
		r := dataset.Row{Labels: make([]int, len(categories))}
		dest := make([]any, 0, len(cols))
		dest = append(dest, &r.ID, &r.Message, &r.Original, &r.Genre)
		for i := range r.Labels {
			dest = append(dest, &r.Labels[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}
	if len(out) == 0 {
		return nil, nil, dataset.ErrEmptyDataset
	}
	return out, categories, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}

func createTableSQL(categories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(TableName))
	b.WriteString("\tid BIGINT,\n\tmessage TEXT,\n\toriginal TEXT,\n\tgenre TEXT")
	for _, c := range categories {
		fmt.Fprintf(&b, ",\n\t%s INTEGER", quoteIdent(c))
	}
	b.WriteString("\n)")
	return b.String()
}

func insertSQL(categories []string, placeholders func(n int) string) string {
	names := append([]string{"id", "message", "original", "genre"}, categories...)
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(TableName), strings.Join(quoted, ", "), placeholders(len(names)))
}

// quoteIdent double-quotes an identifier; valid for both sqlite and postgres.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func questionPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func dollarPlaceholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
