package filter

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ByValue keeps the rows whose column renders as value.
func ByValue(batch *ds.Dataset, column string, value string) (*ds.Dataset, error) {
	index := batch.ColumnIndex(column)
	if index == -1 {
		return nil, errors.Newf("%s column not found", column)
	}

	return batch.Where(func(row []interface{}) (bool, error) {
		if row[index] == nil {
			return false, nil
		}
		return ds.ToString(row[index]) == value, nil
	})
}

// ByMinimum keeps the rows whose numeric column is at least min. Null
// cells never pass.
func ByMinimum(batch *ds.Dataset, column string, min float64) (*ds.Dataset, error) {
	index := batch.ColumnIndex(column)
	if index == -1 {
		return nil, errors.Newf("%s column not found", column)
	}

	return batch.Where(func(row []interface{}) (bool, error) {
		if row[index] == nil {
			return false, nil
		}
		v, ok := ds.ToFloat(row[index])
		if !ok {
			return false, errors.Newf("%s column is not numeric: %v", column, row[index])
		}
		return v >= min, nil
	})
}

// AddQuarter appends outColumn holding the calendar quarter of dateColumn.
func AddQuarter(batch *ds.Dataset, dateColumn string, outColumn string) (*ds.Dataset, error) {
	index := batch.ColumnIndex(dateColumn)
	if index == -1 {
		return nil, errors.Newf("%s column not found", dateColumn)
	}

	return batch.WithColumn(outColumn, func(row []interface{}) (interface{}, error) {
		if row[index] == nil {
			return nil, nil
		}
		tsVal, ok := row[index].(string)
		if !ok {
			return nil, errors.Newf("%s column is not a string", dateColumn)
		}
		timestamp, err := ParseTimestamp(tsVal)
		if err != nil {
			return nil, err
		}
		return QuarterOf(timestamp), nil
	})
}

// AddRatingRange appends outColumn holding the rating bucket label of
// ratingColumn, or nil when the rating falls outside every bucket.
func AddRatingRange(batch *ds.Dataset, ratingColumn string, outColumn string) (*ds.Dataset, error) {
	index := batch.ColumnIndex(ratingColumn)
	if index == -1 {
		return nil, errors.Newf("%s column not found", ratingColumn)
	}

	return batch.WithColumn(outColumn, func(row []interface{}) (interface{}, error) {
		if row[index] == nil {
			return nil, nil
		}
		rating, ok := ds.ToFloat(row[index])
		if !ok {
			return nil, errors.Newf("%s column is not numeric: %v", ratingColumn, row[index])
		}
		label, ok := RatingRange(rating)
		if !ok {
			return nil, nil
		}
		return label, nil
	})
}

func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

type ratingBin struct {
	upper float64
	label string
}

// Right closed bins; the first one also includes its lower edge.
const lowestRating = 3.0

var ratingBins = []ratingBin{
	{upper: 3.5, label: "3.0–3.5"},
	{upper: 4.0, label: "3.6–4.0"},
	{upper: 4.5, label: "4.1–4.5"},
	{upper: 5.0, label: "4.6–5.0"},
}

// RatingLabels lists every rating bucket in ascending order.
func RatingLabels() []string {
	labels := make([]string, len(ratingBins))
	for i, bin := range ratingBins {
		labels[i] = bin.label
	}
	return labels
}

func RatingRange(rating float64) (string, bool) {
	if rating < lowestRating {
		return "", false
	}
	for _, bin := range ratingBins {
		if rating <= bin.upper {
			return bin.label, true
		}
	}
	return "", false
}

func ParseTimestamp(timestampStr string) (time.Time, error) {
	value := strings.TrimSpace(timestampStr)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("unrecognized timestamp %q", timestampStr)
}
