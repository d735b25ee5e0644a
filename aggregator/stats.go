package aggregator

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	a "github.com/priyanka12b/innomatics-lab/aggregator/aggFunctions"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
)

// Reduce applies one aggregation function to a whole column.
func Reduce(batch *ds.Dataset, column string, funcName string) (interface{}, error) {
	idx := batch.ColumnIndex(column)
	if idx == -1 {
		return nil, errorColumnNotFound(column, batch)
	}
	agg := a.NewAggregation(funcName)
	if agg == nil {
		return nil, errors.Newf("unknown aggregation function %s", funcName)
	}
	for _, row := range batch.Rows {
		agg = agg.Add(row[idx])
	}
	return agg.Result(), nil
}

// Mean is the average of the non null values of column. An empty input is
// ErrEmptyGroup rather than NaN.
func Mean(batch *ds.Dataset, column string) (float64, error) {
	result, err := Reduce(batch, column, "mean")
	if err != nil {
		return 0, err
	}
	mean := result.(float64)
	if math.IsNaN(mean) {
		return 0, errors.Wrapf(ErrEmptyGroup, "mean of %s", column)
	}
	return mean, nil
}

// Quantile interpolates linearly between the two closest ranks of the
// sorted values.
func Quantile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.Wrap(ErrEmptyGroup, "quantile")
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, errors.Newf("quantile %v out of range [0, 1]", q)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower], nil
	}
	fraction := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*fraction, nil
}
