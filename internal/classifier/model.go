package classifier

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/crisisml/disaster-response/internal/dataset"
	"github.com/crisisml/disaster-response/internal/features"
)

// Params is one point of the hyperparameter grid.
type Params struct {
	UseIDF bool
	Trees  int
}

// Model is the trained artifact: the fitted feature pipeline, one decision
// head per category and the winning hyperparameters. It is immutable after
// training; retraining produces a whole new artifact.
type Model struct {
	Categories  []string
	Vectorizer  *features.CountVectorizer
	Tfidf       *features.TfidfTransformer
	Classifiers []CategoryClassifier
	Params      Params
	Seed        int64
}

// Predict classifies raw texts, returning one binary value per category per
// text. The fitted feature pipeline is applied as-is, never refitted, and
// category decisions are independent (labels are not mutually exclusive).
func (m *Model) Predict(texts []string) ([][]int, error) {
	counts, err := m.Vectorizer.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("error vectorizing texts: %w", err)
	}
	weighted, err := m.Tfidf.Transform(counts)
	if err != nil {
		return nil, fmt.Errorf("error weighting features: %w", err)
	}
	rows := denseRows(weighted)

	out := make([][]int, len(rows))
	for i, row := range rows {
		labels := make([]int, len(m.Classifiers))
		for c, head := range m.Classifiers {
			labels[c] = head.predict(row)
		}
		out[i] = labels
	}
	return out, nil
}

// DeserializationError reports a model artifact that could not be read back
// into a predict-capable form.
type DeserializationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model artifact %s unusable: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("model artifact %s unusable: %s", e.Path, e.Reason)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// Save serializes the model as a single gob blob.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating model file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("error encoding model: %w", err)
	}
	return f.Close()
}

// Load deserializes a model artifact and validates that it is structurally
// able to predict. Any failure is a *DeserializationError.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DeserializationError{Path: path, Reason: "cannot open", Err: err}
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, &DeserializationError{Path: path, Reason: "cannot decode", Err: err}
	}

	if m.Vectorizer == nil || m.Vectorizer.Vocabulary == nil || m.Tfidf == nil {
		return nil, &DeserializationError{Path: path, Reason: "feature pipeline state missing"}
	}
	if len(m.Categories) != dataset.CategoryCount {
		return nil, &DeserializationError{
			Path:   path,
			Reason: fmt.Sprintf("expected %d categories, found %d", dataset.CategoryCount, len(m.Categories)),
		}
	}
	if len(m.Classifiers) != len(m.Categories) {
		return nil, &DeserializationError{
			Path:   path,
			Reason: fmt.Sprintf("%d classifiers for %d categories", len(m.Classifiers), len(m.Categories)),
		}
	}
	return &m, nil
}
