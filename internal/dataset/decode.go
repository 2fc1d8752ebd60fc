package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeCategories parses a column of ";"-joined "name-digit" encodings into
// the ordered category names and a binary-ish label matrix (values are the
// raw digits; remapping out-of-range values is the cleaner's job).
//
// The first record's tokens are authoritative: their order defines the name
// order for every row, and every later record must carry the same number of
// tokens. The derived name count must equal CategoryCount.
func DecodeCategories(column []string) ([]string, [][]int, error) {
	if len(column) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	first := strings.Split(column[0], ";")
	names := make([]string, len(first))
	for i, token := range first {
		if len(token) < 3 {
			return nil, nil, fmt.Errorf("malformed category token %q in first record", token)
		}
		// "water-0" -> "water": the value suffix is always 2 characters.
		names[i] = token[:len(token)-2]
	}
	if len(names) != CategoryCount {
		return nil, nil, &ShapeError{What: "category names", Want: CategoryCount, Got: len(names)}
	}

	matrix := make([][]int, len(column))
	for i, value := range column {
		tokens := strings.Split(value, ";")
		if len(tokens) != len(names) {
			return nil, nil, &ShapeError{
				What: fmt.Sprintf("category tokens in record %d", i),
				Want: len(names),
				Got:  len(tokens),
			}
		}
		row := make([]int, len(tokens))
		for j, token := range tokens {
			if token == "" {
				return nil, nil, fmt.Errorf("empty category token at record %d position %d", i, j)
			}
			v, err := strconv.Atoi(token[len(token)-1:])
			if err != nil {
				return nil, nil, fmt.Errorf("non-numeric category value in token %q at record %d: %w", token, i, err)
			}
			row[j] = v
		}
		matrix[i] = row
	}

	return names, matrix, nil
}
