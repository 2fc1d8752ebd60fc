package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crisisml/disaster-response/internal/dataset"
	"github.com/crisisml/disaster-response/internal/features"
	"github.com/crisisml/disaster-response/pkg/config"
)

// unitResult is the outcome of one combo x fold work unit. A unit failure
// disqualifies its combo; it never aborts the search.
type unitResult struct {
	score float64
	err   error
}

// Train runs the grid search and fits the final model on the full training
// split with the winning configuration.
//
// The grid is the Cartesian product of {idf on, idf off} and the configured
// ensemble sizes, each scored by k-fold cross-validation with subset
// accuracy (exact label-vector match). Ties break to the first-encountered
// maximum in enumeration order. Work units fan out over a bounded worker
// pool; each unit only reads the shared training data and writes its own
// result slot.
func Train(texts []string, labels [][]int, categories []string, cfg config.TrainingConfig, logger *zap.Logger) (*Model, error) {
	if len(texts) == 0 || len(labels) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if len(labels) != len(texts) {
		return nil, &dataset.ShapeError{What: "label rows", Want: len(texts), Got: len(labels)}
	}
	for i, row := range labels {
		if len(row) != len(categories) {
			return nil, &dataset.ShapeError{
				What: fmt.Sprintf("label columns in row %d", i),
				Want: len(categories),
				Got:  len(row),
			}
		}
	}

	grid := buildGrid(cfg.EnsembleSizes)
	folds, err := assignFolds(len(texts), cfg.CVFolds, cfg.Seed)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([][]unitResult, len(grid))
	for i := range results {
		results[i] = make([]unitResult, len(folds))
	}

	// One seeding for the whole fan-out; reseeding inside concurrent units
	// would make sibling draws interdependent.
	seedRNG(cfg.Seed)

	var g errgroup.Group
	g.SetLimit(workers)
	for ci := range grid {
		for fi := range folds {
			ci, fi := ci, fi
			g.Go(func() error {
				score, err := scoreUnit(texts, labels, folds, fi, grid[ci], cfg.Seed)
				results[ci][fi] = unitResult{score: score, err: err}
				return nil
			})
		}
	}
	// Units never return errors; failures live in their result slots.
	_ = g.Wait()

	best := -1
	bestScore := math.Inf(-1)
	for ci, combo := range grid {
		score, disqualified := comboScore(results[ci])
		if disqualified != nil {
			logger.Warn("Hyperparameter combination disqualified",
				zap.Bool("use_idf", combo.UseIDF),
				zap.Int("trees", combo.Trees),
				zap.Error(disqualified))
			continue
		}
		logger.Info("Cross-validation score",
			zap.Bool("use_idf", combo.UseIDF),
			zap.Int("trees", combo.Trees),
			zap.Float64("score", score))
		if score > bestScore {
			bestScore = score
			best = ci
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("hyperparameter search failed: every combination was disqualified")
	}

	logger.Info("Selected hyperparameters",
		zap.Bool("use_idf", grid[best].UseIDF),
		zap.Int("trees", grid[best].Trees),
		zap.Float64("cv_score", bestScore))

	seedRNG(cfg.Seed)
	model, err := fitPipeline(texts, labels, categories, grid[best], cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("error fitting final model: %w", err)
	}
	return model, nil
}

func buildGrid(ensembleSizes []int) []Params {
	var grid []Params
	for _, useIDF := range []bool{true, false} {
		for _, trees := range ensembleSizes {
			grid = append(grid, Params{UseIDF: useIDF, Trees: trees})
		}
	}
	return grid
}

// assignFolds deals shuffled row indices into k folds.
func assignFolds(n, k int, seed int64) ([][]int, error) {
	if n < k {
		return nil, fmt.Errorf("cannot cross-validate %d rows with %d folds", n, k)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	folds := make([][]int, k)
	for i, idx := range perm {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds, nil
}

// scoreUnit trains the pipeline on every fold but holdout and scores it on
// the held-out fold.
func scoreUnit(texts []string, labels [][]int, folds [][]int, holdout int, p Params, seed int64) (float64, error) {
	var trainIdx []int
	for fi, fold := range folds {
		if fi != holdout {
			trainIdx = append(trainIdx, fold...)
		}
	}
	valIdx := folds[holdout]

	model, err := fitPipeline(gather(texts, trainIdx), gatherRows(labels, trainIdx), nil, p, seed)
	if err != nil {
		return 0, err
	}

	pred, err := model.Predict(gather(texts, valIdx))
	if err != nil {
		return 0, err
	}
	return subsetAccuracy(pred, gatherRows(labels, valIdx)), nil
}

func comboScore(units []unitResult) (float64, error) {
	var sum float64
	for _, u := range units {
		if u.err != nil {
			return 0, u.err
		}
		sum += u.score
	}
	return sum / float64(len(units)), nil
}

// subsetAccuracy is the fraction of rows whose full label vector matches.
func subsetAccuracy(pred, want [][]int) float64 {
	if len(want) == 0 {
		return 0
	}
	exact := 0
	for i := range want {
		match := true
		for j := range want[i] {
			if pred[i][j] != want[i][j] {
				match = false
				break
			}
		}
		if match {
			exact++
		}
	}
	return float64(exact) / float64(len(want))
}

// fitPipeline fits vectorizer, idf weighting and all decision heads on the
// given split. categories may be nil during cross-validation, where only
// predictions matter.
func fitPipeline(texts []string, labels [][]int, categories []string, p Params, seed int64) (*Model, error) {
	vectorizer := features.NewCountVectorizer()
	counts, err := vectorizer.FitTransform(texts)
	if err != nil {
		return nil, err
	}

	tfidf := features.NewTfidfTransformer(p.UseIDF)
	if err := tfidf.Fit(counts); err != nil {
		return nil, err
	}
	weighted, err := tfidf.Transform(counts)
	if err != nil {
		return nil, err
	}

	x := denseRows(weighted)
	nCategories := 0
	if len(labels) > 0 {
		nCategories = len(labels[0])
	}

	heads := make([]CategoryClassifier, nCategories)
	for c := 0; c < nCategories; c++ {
		column := make([]int, len(labels))
		for i, row := range labels {
			column[i] = row[c]
		}
		heads[c] = trainCategoryClassifier(x, column, p.Trees)
	}

	return &Model{
		Categories:  categories,
		Vectorizer:  vectorizer,
		Tfidf:       tfidf,
		Classifiers: heads,
		Params:      p,
		Seed:        seed,
	}, nil
}

// SplitTrainTest shuffles rows with the given seed and holds out testSize of
// them for evaluation.
func SplitTrainTest(texts []string, labels [][]int, testSize float64, seed int64) (trainX []string, trainY [][]int, testX []string, testY [][]int, err error) {
	n := len(texts)
	if n < 2 {
		return nil, nil, nil, nil, dataset.ErrEmptyDataset
	}
	if len(labels) != n {
		return nil, nil, nil, nil, &dataset.ShapeError{What: "label rows", Want: n, Got: len(labels)}
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	nTest := int(math.Round(float64(n) * testSize))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}

	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]
	return gather(texts, trainIdx), gatherRows(labels, trainIdx),
		gather(texts, testIdx), gatherRows(labels, testIdx), nil
}

func gather(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

func gatherRows(values [][]int, idx []int) [][]int {
	out := make([][]int, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
