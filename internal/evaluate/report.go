// Package evaluate scores a trained model against a held-out split. Purely
// informational; it never mutates the model or its inputs.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/crisisml/disaster-response/internal/classifier"
	"github.com/crisisml/disaster-response/internal/dataset"
)

// CategoryMetrics holds the binary classification metrics of one category
// column, treating 1 as the positive class.
type CategoryMetrics struct {
	Category  string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is the full per-category evaluation plus macro (unweighted mean)
// and weighted (support-weighted mean) aggregates.
type Report struct {
	PerCategory []CategoryMetrics
	Macro       CategoryMetrics
	Weighted    CategoryMetrics
}

// Evaluate predicts the held-out texts and computes precision, recall, F1
// and support independently per category column.
func Evaluate(model *classifier.Model, texts []string, labels [][]int, categories []string) (*Report, error) {
	if len(texts) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if len(labels) != len(texts) {
		return nil, &dataset.ShapeError{What: "label rows", Want: len(texts), Got: len(labels)}
	}

	pred, err := model.Predict(texts)
	if err != nil {
		return nil, fmt.Errorf("error predicting held-out texts: %w", err)
	}
	return buildReport(pred, labels, categories)
}

func buildReport(pred, labels [][]int, categories []string) (*Report, error) {
	for i := range labels {
		if len(labels[i]) != len(categories) {
			return nil, &dataset.ShapeError{
				What: fmt.Sprintf("label columns in row %d", i),
				Want: len(categories),
				Got:  len(labels[i]),
			}
		}
		if len(pred[i]) != len(categories) {
			return nil, &dataset.ShapeError{
				What: fmt.Sprintf("predicted columns in row %d", i),
				Want: len(categories),
				Got:  len(pred[i]),
			}
		}
	}

	report := &Report{PerCategory: make([]CategoryMetrics, len(categories))}
	totalSupport := 0
	for c, name := range categories {
		var tp, fp, fn, support int
		for i := range labels {
			want, got := labels[i][c], pred[i][c]
			if want == 1 {
				support++
			}
			switch {
			case want == 1 && got == 1:
				tp++
			case want == 0 && got == 1:
				fp++
			case want == 1 && got == 0:
				fn++
			}
		}

		m := CategoryMetrics{Category: name, Support: support}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.PerCategory[c] = m
		totalSupport += support
	}

	for _, m := range report.PerCategory {
		report.Macro.Precision += m.Precision / float64(len(categories))
		report.Macro.Recall += m.Recall / float64(len(categories))
		report.Macro.F1 += m.F1 / float64(len(categories))
		report.Macro.Support += m.Support
		if totalSupport > 0 {
			w := float64(m.Support) / float64(totalSupport)
			report.Weighted.Precision += m.Precision * w
			report.Weighted.Recall += m.Recall * w
			report.Weighted.F1 += m.F1 * w
		}
	}
	report.Weighted.Support = totalSupport
	report.Macro.Category = "macro avg"
	report.Weighted.Category = "weighted avg"

	return report, nil
}

// String renders the report as a fixed-width table.
func (r *Report) String() string {
	width := len("weighted avg")
	for _, m := range r.PerCategory {
		if len(m.Category) > width {
			width = len(m.Category)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %9s  %9s  %9s  %9s\n", width, "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")
	for _, m := range r.PerCategory {
		writeMetricsRow(&b, width, m)
	}
	b.WriteString("\n")
	writeMetricsRow(&b, width, r.Macro)
	writeMetricsRow(&b, width, r.Weighted)
	return b.String()
}

func writeMetricsRow(b *strings.Builder, width int, m CategoryMetrics) {
	fmt.Fprintf(b, "%-*s  %9.2f  %9.2f  %9.2f  %9d\n",
		width, m.Category, m.Precision, m.Recall, m.F1, m.Support)
}
