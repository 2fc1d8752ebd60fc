package evaluate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crisisml/disaster-response/internal/classifier"
	"github.com/crisisml/disaster-response/internal/dataset"
	"github.com/crisisml/disaster-response/pkg/config"
)

func TestBuildReportKnownCounts(t *testing.T) {
	categories := []string{"water", "food"}
	labels := [][]int{
		{1, 0},
		{1, 1},
		{0, 1},
		{0, 0},
	}
	pred := [][]int{
		{1, 0}, // water tp
		{0, 1}, // water fn, food tp
		{1, 1}, // water fp, food tp
		{0, 0},
	}

	report, err := buildReport(pred, labels, categories)
	require.NoError(t, err)
	require.Len(t, report.PerCategory, 2)

	water := report.PerCategory[0]
	assert.InDelta(t, 0.5, water.Precision, 1e-12) // tp=1 fp=1
	assert.InDelta(t, 0.5, water.Recall, 1e-12)    // tp=1 fn=1
	assert.InDelta(t, 0.5, water.F1, 1e-12)
	assert.Equal(t, 2, water.Support)

	food := report.PerCategory[1]
	assert.InDelta(t, 1.0, food.Precision, 1e-12) // tp=2 fp=0
	assert.InDelta(t, 1.0, food.Recall, 1e-12)    // tp=2 fn=0
	assert.InDelta(t, 1.0, food.F1, 1e-12)
	assert.Equal(t, 2, food.Support)

	assert.InDelta(t, 0.75, report.Macro.Precision, 1e-12)
	assert.InDelta(t, 0.75, report.Macro.F1, 1e-12)
	assert.Equal(t, 4, report.Macro.Support)

	// Equal supports, so weighted equals macro here.
	assert.InDelta(t, report.Macro.F1, report.Weighted.F1, 1e-12)
	assert.Equal(t, 4, report.Weighted.Support)
}

func TestBuildReportZeroDivisionIsZero(t *testing.T) {
	categories := []string{"never_predicted"}
	labels := [][]int{{0}, {0}}
	pred := [][]int{{0}, {0}}

	report, err := buildReport(pred, labels, categories)
	require.NoError(t, err)

	m := report.PerCategory[0]
	assert.Zero(t, m.Precision)
	assert.Zero(t, m.Recall)
	assert.Zero(t, m.F1)
	assert.Zero(t, m.Support)
}

func TestBuildReportShapeMismatch(t *testing.T) {
	var shapeErr *dataset.ShapeError
	_, err := buildReport([][]int{{1}}, [][]int{{1, 0}}, []string{"water"})
	assert.ErrorAs(t, err, &shapeErr)

	// Predictions narrower than the category list fail the same way
	// instead of panicking.
	_, err = buildReport([][]int{{1}}, [][]int{{1, 0}}, []string{"water", "food"})
	require.ErrorAs(t, err, &shapeErr)
	assert.Contains(t, shapeErr.What, "predicted")
}

func TestEvaluateAgainstTrainedModel(t *testing.T) {
	texts := []string{
		"we need water now",
		"water for the shelter",
		"food supplies have run out",
		"food and water please",
		"the weather is calm today",
		"roads remain open",
	}
	labels := [][]int{
		{1, 0},
		{1, 0},
		{0, 1},
		{1, 1},
		{0, 0},
		{0, 0},
	}
	categories := []string{"water", "food"}

	cfg := config.TrainingConfig{Seed: 85055, TestSize: 0.2, CVFolds: 2, Workers: 1, EnsembleSizes: []int{5}}
	model, err := classifier.Train(texts, labels, categories, cfg, zap.NewNop())
	require.NoError(t, err)

	report, err := Evaluate(model, texts, labels, categories)
	require.NoError(t, err)

	require.Len(t, report.PerCategory, 2)
	assert.Equal(t, 3, report.PerCategory[0].Support)
	assert.Equal(t, 2, report.PerCategory[1].Support)

	rendered := report.String()
	assert.Contains(t, rendered, "water")
	assert.Contains(t, rendered, "food")
	assert.Contains(t, rendered, "macro avg")
	assert.Contains(t, rendered, "weighted avg")
	// header + blank + category rows + blank + two aggregate rows
	assert.Equal(t, len(categories)+5, len(strings.Split(strings.TrimRight(rendered, "\n"), "\n")))
}

func TestEvaluateEmptyInput(t *testing.T) {
	_, err := Evaluate(&classifier.Model{}, nil, nil, []string{"water"})
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}
