// Package nlp turns free text into normalized word tokens. The same code
// path runs at training and prediction time; the fitted vocabulary depends
// on it being exactly reproducible.
package nlp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"
)

var (
	initOnce   sync.Once
	initErr    error
	lemmatizer *golem.Lemmatizer
)

// Init loads the English lemma dictionary. It is idempotent and safe to call
// redundantly; Tokenize calls it on demand, but entry points should call it
// up front so a missing resource fails before any work is done.
func Init() error {
	initOnce.Do(func() {
		lemmatizer, initErr = golem.New(en.New())
		if initErr != nil {
			initErr = fmt.Errorf("error loading lemma dictionary: %w", initErr)
		}
	})
	return initErr
}

// Tokenize lower-cases text, splits it with a treebank-style linguistic
// tokenizer and reduces each token to its dictionary base form. An empty or
// blank input yields an empty sequence.
func Tokenize(text string) ([]string, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(
		strings.ToLower(text),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("error tokenizing text: %w", err)
	}

	raw := doc.Tokens()
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		t := strings.TrimSpace(lemmatizer.Lemma(tok.Text))
		if t == "" {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
