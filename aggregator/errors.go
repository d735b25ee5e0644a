package aggregator

import (
	"github.com/cockroachdb/errors"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
)

// ErrEmptyGroup is returned when an extreme or a statistic is requested
// over no values.
var ErrEmptyGroup = errors.New("no values to select from")

func errorColumnNotFound(col string, batch *ds.Dataset) error {
	return errors.Newf("column %s not found in columns %v", col, batch.ColumnNames)
}
