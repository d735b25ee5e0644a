package aggfunctions

import (
	"strconv"
	"strings"

	roaring "github.com/RoaringBitmap/roaring/roaring64"
	"github.com/priyanka12b/innomatics-lab/dataset"
)

func NewDistinctCountAggregation() *DistinctCountAggregation {
	return &DistinctCountAggregation{
		ids:    roaring.New(),
		others: make(map[string]struct{}),
	}
}

// DistinctCountAggregation counts distinct values. Non negative integral
// identifiers live in a roaring bitmap, anything else in a plain set.
type DistinctCountAggregation struct {
	ids    *roaring.Bitmap
	others map[string]struct{}
}

func (d *DistinctCountAggregation) Add(value interface{}) Aggregation {
	if value == nil {
		return d
	}
	text := strings.TrimSpace(dataset.ToString(value))
	if id, err := strconv.ParseUint(text, 10, 64); err == nil {
		d.ids.Add(id)
		return d
	}
	d.others[text] = struct{}{}
	return d
}

func (d *DistinctCountAggregation) Result() interface{} {
	return int(d.ids.GetCardinality()) + len(d.others)
}
