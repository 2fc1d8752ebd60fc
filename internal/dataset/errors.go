package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when no rows survive loading, cleaning or
// splitting. Training on an empty dataset is never recoverable.
var ErrEmptyDataset = errors.New("dataset contains no rows")

// ShapeError reports a label-space violation: a token or column count that
// does not match what the rest of the pipeline was built around. It is
// always fatal; a wrong label space silently invalidates every downstream
// result.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", e.What, e.Want, e.Got)
}
