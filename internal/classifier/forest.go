package classifier

import (
	"math/rand"

	randomforest "github.com/malaschitz/randomForest"
	"gonum.org/v1/gonum/mat"
)

// CategoryClassifier is one binary decision head. Categories whose training
// column contains a single class get a constant head instead of a forest:
// a forest cannot be grown on one class, and the constant is the only
// defensible prediction anyway. Fields are exported for gob.
type CategoryClassifier struct {
	Constant int
	Forest   *randomforest.Forest
}

// trainCategoryClassifier fits one head on dense feature rows and a binary
// label column.
func trainCategoryClassifier(x [][]float64, column []int, trees int) CategoryClassifier {
	first := column[0]
	uniform := true
	for _, v := range column {
		if v != first {
			uniform = false
			break
		}
	}
	if uniform {
		return CategoryClassifier{Constant: first}
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: column}
	forest.Train(trees)
	return CategoryClassifier{Forest: forest}
}

// predict returns the binary decision for one feature row.
func (c CategoryClassifier) predict(row []float64) int {
	if c.Forest == nil {
		return c.Constant
	}
	votes := c.Forest.Vote(row)
	best := 0
	for class, v := range votes {
		if v > votes[best] {
			best = class
		}
	}
	if best > 1 {
		best = 1
	}
	return best
}

// seedRNG fixes the process-wide RNG the forest library draws from, so
// repeated training runs grow identical trees.
func seedRNG(seed int64) {
	rand.Seed(seed)
}

type nonZeroDoer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// denseRows expands a feature matrix into dense rows for the forest library.
// Sparse inputs are walked by their non-zero entries.
func denseRows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
	}
	if s, ok := m.(nonZeroDoer); ok {
		s.DoNonZero(func(i, j int, v float64) {
			out[i][j] = v
		})
		return out
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
