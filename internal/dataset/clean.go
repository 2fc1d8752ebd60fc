package dataset

import (
	"fmt"
	"strings"
)

// joined is an intermediate record: message fields plus the still-encoded
// categories text.
type joined struct {
	Message
	categories string
}

// Clean inner-joins messages with their category encodings, removes exact
// duplicates, decodes the categories into the 36 label columns and folds the
// out-of-range "related" value 2 into 1. Inputs are never mutated.
//
// Rows without a join partner are dropped, not reported as errors; the
// counts land in CleanResult.Stats so callers can log them.
func Clean(messages []Message, categories []CategoryRecord) (*CleanResult, error) {
	stats := CleanStats{
		MessagesIn:   len(messages),
		CategoriesIn: len(categories),
	}

	byID := make(map[int64]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Categories
	}

	matched := make(map[int64]bool, len(messages))
	var rows []joined
	for _, m := range messages {
		enc, ok := byID[m.ID]
		if !ok {
			stats.UnmatchedMessages++
			continue
		}
		matched[m.ID] = true
		rows = append(rows, joined{Message: m, categories: enc})
	}
	for _, c := range categories {
		if !matched[c.ID] {
			stats.UnmatchedCategories++
		}
	}
	stats.Joined = len(rows)

	// First dedup pass, on the joined but still-encoded rows.
	rows, removed := dedupJoined(rows)
	stats.DuplicatesRemoved += removed

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	column := make([]string, len(rows))
	for i, r := range rows {
		column[i] = r.categories
	}
	names, matrix, err := DecodeCategories(column)
	if err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	relatedIdx := -1
	for i, name := range names {
		if name == "related" {
			relatedIdx = i
			break
		}
	}

	decoded := make([]Row, len(rows))
	for i, r := range rows {
		labels := matrix[i]
		if relatedIdx >= 0 && labels[relatedIdx] == 2 {
			labels[relatedIdx] = 1
			stats.RelatedRemapped++
		}
		decoded[i] = Row{
			ID:       r.ID,
			Message:  r.Message.Message,
			Original: r.Original,
			Genre:    r.Genre,
			Labels:   labels,
		}
	}

	// Second pass: decoding and remapping can collapse rows that differed
	// only in their raw encoding.
	decoded, removed = dedupRows(decoded)
	stats.DuplicatesRemoved += removed

	return &CleanResult{Rows: decoded, Categories: names, Stats: stats}, nil
}

func dedupJoined(rows []joined) ([]joined, int) {
	seen := make(map[joined]bool, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, len(rows) - len(out)
}

func dedupRows(rows []Row) ([]Row, int) {
	seen := make(map[string]bool, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		key := rowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out, len(rows) - len(out)
}

func rowKey(r Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\x00%s\x00%s\x00%s\x00", r.ID, r.Message, r.Original, r.Genre)
	for _, v := range r.Labels {
		fmt.Fprintf(&b, "%d,", v)
	}
	return b.String()
}
