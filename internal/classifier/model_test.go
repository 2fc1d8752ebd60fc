package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/dataset"
)

// fullWidthData builds a corpus with the full 36-column label space, since
// Load enforces the category-count contract.
func fullWidthData() ([]string, [][]int, []string) {
	texts, narrow, _ := toyData()
	names := make([]string, dataset.CategoryCount)
	for i := range names {
		names[i] = fmt.Sprintf("category_%02d", i)
	}
	labels := make([][]int, len(narrow))
	for i, row := range narrow {
		wide := make([]int, dataset.CategoryCount)
		copy(wide, row)
		labels[i] = wide
	}
	return texts, labels, names
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	texts, labels, names := fullWidthData()

	model, err := Train(texts, labels, names, smallConfig(), zap.NewNop())
	require.NoError(t, err)

	probe := []string{"we need water", "food for the children", "zebra"}
	before, err := model.Predict(probe)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, model.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, model.Categories, loaded.Categories)
	assert.Equal(t, model.Params, loaded.Params)
	assert.Equal(t, model.Vectorizer.Terms, loaded.Vectorizer.Terms)
	assert.Equal(t, model.Tfidf.IDF, loaded.Tfidf.IDF)

	after, err := loaded.Predict(probe)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob blob"), 0o644))

	var deserErr *DeserializationError
	_, err := Load(path)
	assert.ErrorAs(t, err, &deserErr)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	var deserErr *DeserializationError
	_, err := Load(filepath.Join(t.TempDir(), "absent.gob"))
	assert.ErrorAs(t, err, &deserErr)
}

func TestLoadRejectsWrongLabelSpace(t *testing.T) {
	texts, labels, names := toyData()

	model, err := Train(texts, labels, names, smallConfig(), zap.NewNop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, model.Save(path))

	var deserErr *DeserializationError
	_, err = Load(path)
	require.ErrorAs(t, err, &deserErr)
	assert.Contains(t, deserErr.Reason, "categories")
}
