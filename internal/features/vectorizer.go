// Package features converts tokenized text into weighted sparse matrices:
// term counts first, then optional TF-IDF re-weighting. Both stages have an
// explicit fit/transform contract; state fitted on the training split is
// reused as-is on unseen text.
package features

import (
	"errors"
	"fmt"
	"sort"
	"unicode"

	"github.com/james-bowman/sparse"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/crisisml/disaster-response/internal/nlp"
)

// ErrNotFitted is returned when Transform runs before Fit.
var ErrNotFitted = errors.New("feature stage has not been fitted")

// CountVectorizer maps documents to term-count vectors over a vocabulary
// learned from the fit corpus. Unicode accents are stripped before
// tokenization. All fields are exported so a fitted vectorizer survives gob
// round-trips inside the model artifact.
type CountVectorizer struct {
	// Vocabulary maps a term to its column index; Terms is the inverse,
	// sorted so the column order is stable across fits of the same corpus.
	Vocabulary map[string]int
	Terms      []string
}

func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{}
}

// Fit learns the vocabulary from the corpus.
func (v *CountVectorizer) Fit(texts []string) error {
	terms := make(map[string]bool)
	for i, text := range texts {
		tokens, err := tokenizeNormalized(text)
		if err != nil {
			return fmt.Errorf("error tokenizing document %d: %w", i, err)
		}
		for _, tok := range tokens {
			terms[tok] = true
		}
	}
	if len(terms) == 0 {
		return errors.New("empty vocabulary: fit corpus contains no terms")
	}

	v.Terms = make([]string, 0, len(terms))
	for term := range terms {
		v.Terms = append(v.Terms, term)
	}
	sort.Strings(v.Terms)

	v.Vocabulary = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.Vocabulary[term] = i
	}
	return nil
}

// Transform counts fitted-vocabulary terms per document. Out-of-vocabulary
// terms contribute nothing, so unseen text always yields a matrix with the
// fitted column count.
func (v *CountVectorizer) Transform(texts []string) (*sparse.CSR, error) {
	if v.Vocabulary == nil {
		return nil, ErrNotFitted
	}
	dok := sparse.NewDOK(len(texts), len(v.Terms))
	for i, text := range texts {
		tokens, err := tokenizeNormalized(text)
		if err != nil {
			return nil, fmt.Errorf("error tokenizing document %d: %w", i, err)
		}
		for _, tok := range tokens {
			if j, ok := v.Vocabulary[tok]; ok {
				dok.Set(i, j, dok.At(i, j)+1)
			}
		}
	}
	return dok.ToCSR(), nil
}

// FitTransform fits the vocabulary and transforms the same corpus.
func (v *CountVectorizer) FitTransform(texts []string) (*sparse.CSR, error) {
	if err := v.Fit(texts); err != nil {
		return nil, err
	}
	return v.Transform(texts)
}

func tokenizeNormalized(text string) ([]string, error) {
	// The chained transformer carries per-use state, so it cannot be shared
	// across goroutines; building it per call is cheap.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		return nil, fmt.Errorf("error stripping accents: %w", err)
	}
	return nlp.Tokenize(stripped)
}
