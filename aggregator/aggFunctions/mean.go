package aggfunctions

import (
	"math"

	"github.com/priyanka12b/innomatics-lab/dataset"
)

func NewMeanAggregation() *MeanAggregation {
	return &MeanAggregation{}
}

type MeanAggregation struct {
	sum   float64
	count int
}

func (m *MeanAggregation) Add(value interface{}) Aggregation {
	if v, ok := dataset.ToFloat(value); ok {
		m.sum += v
		m.count++
	}
	return m
}

// Result is NaN when no value was added.
func (m *MeanAggregation) Result() interface{} {
	if m.count == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.count)
}
