package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The 36 category names of the disaster-response label space, in file order.
var testCategories = []string{
	"related", "request", "offer", "aid_related", "medical_help",
	"medical_products", "search_and_rescue", "security", "military",
	"child_alone", "water", "food", "shelter", "clothing", "money",
	"missing_people", "refugees", "death", "other_aid",
	"infrastructure_related", "transport", "buildings", "electricity",
	"tools", "hospitals", "shops", "aid_centers", "other_infrastructure",
	"weather_related", "floods", "storm", "fire", "earthquake", "cold",
	"other_weather", "direct_report",
}

// encodeCategories renders a full 36-token encoding with the given
// overrides, everything else 0.
func encodeCategories(overrides map[string]int) string {
	tokens := make([]string, len(testCategories))
	for i, name := range testCategories {
		v := overrides[name]
		tokens[i] = name + "-" + string(rune('0'+v))
	}
	return strings.Join(tokens, ";")
}

func TestDecodeCategories(t *testing.T) {
	column := []string{
		encodeCategories(map[string]int{"related": 1, "water": 1}),
		encodeCategories(map[string]int{"request": 1}),
	}

	names, matrix, err := DecodeCategories(column)
	require.NoError(t, err)

	assert.Len(t, names, CategoryCount)
	assert.Equal(t, testCategories, names)
	require.Len(t, matrix, 2)
	assert.Len(t, matrix[0], CategoryCount)

	assert.Equal(t, 1, matrix[0][0], "related")
	assert.Equal(t, 1, matrix[0][10], "water")
	assert.Equal(t, 0, matrix[0][1], "request")
	assert.Equal(t, 1, matrix[1][1], "request")
}

func TestDecodeCategoriesIdempotent(t *testing.T) {
	column := []string{encodeCategories(map[string]int{"food": 1, "related": 2})}

	names1, matrix1, err := DecodeCategories(column)
	require.NoError(t, err)
	names2, matrix2, err := DecodeCategories(column)
	require.NoError(t, err)

	assert.Equal(t, names1, names2)
	assert.Equal(t, matrix1, matrix2)
}

func TestDecodeCategoriesWrongNameCount(t *testing.T) {
	_, _, err := DecodeCategories([]string{"related-1;request-0"})

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, CategoryCount, shapeErr.Want)
	assert.Equal(t, 2, shapeErr.Got)
}

func TestDecodeCategoriesMismatchedTokenCounts(t *testing.T) {
	full := encodeCategories(nil)
	short := strings.Join(strings.Split(full, ";")[:35], ";")

	_, _, err := DecodeCategories([]string{full, short})

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, CategoryCount, shapeErr.Want)
	assert.Equal(t, 35, shapeErr.Got)
}

func TestDecodeCategoriesNonNumericSuffix(t *testing.T) {
	full := encodeCategories(nil)
	bad := strings.Replace(full, "water-0", "water-x", 1)

	_, _, err := DecodeCategories([]string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-numeric")
}

func TestDecodeCategoriesEmptyColumn(t *testing.T) {
	_, _, err := DecodeCategories(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
