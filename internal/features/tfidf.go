package features

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
)

// TfidfTransformer re-weights term counts by smoothed inverse document
// frequency and L2-normalizes each row. IDF re-weighting is a training
// hyperparameter; row normalization is always applied.
type TfidfTransformer struct {
	UseIDF bool
	IDF    []float64
}

func NewTfidfTransformer(useIDF bool) *TfidfTransformer {
	return &TfidfTransformer{UseIDF: useIDF}
}

// Fit computes per-term idf weights from a count matrix:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func (t *TfidfTransformer) Fit(counts *sparse.CSR) error {
	n, terms := counts.Dims()

	df := make([]float64, terms)
	counts.DoNonZero(func(_, j int, _ float64) {
		df[j]++
	})

	t.IDF = make([]float64, terms)
	for j := range df {
		t.IDF[j] = math.Log((1+float64(n))/(1+df[j])) + 1
	}
	return nil
}

// Transform applies the fitted weights. The input matrix is not modified.
func (t *TfidfTransformer) Transform(counts *sparse.CSR) (*sparse.CSR, error) {
	if t.IDF == nil {
		return nil, ErrNotFitted
	}
	rows, terms := counts.Dims()
	if terms != len(t.IDF) {
		return nil, &dimensionError{want: len(t.IDF), got: terms}
	}

	norms := make([]float64, rows)
	counts.DoNonZero(func(i, j int, v float64) {
		if t.UseIDF {
			v *= t.IDF[j]
		}
		norms[i] += v * v
	})
	for i := range norms {
		norms[i] = math.Sqrt(norms[i])
	}

	dok := sparse.NewDOK(rows, terms)
	counts.DoNonZero(func(i, j int, v float64) {
		if t.UseIDF {
			v *= t.IDF[j]
		}
		if norms[i] > 0 {
			v /= norms[i]
		}
		dok.Set(i, j, v)
	})
	return dok.ToCSR(), nil
}

type dimensionError struct {
	want, got int
}

func (e *dimensionError) Error() string {
	return fmt.Sprintf("term count mismatch with fitted idf weights: want %d, got %d", e.want, e.got)
}
