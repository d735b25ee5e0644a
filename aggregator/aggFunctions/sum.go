package aggfunctions

import "github.com/priyanka12b/innomatics-lab/dataset"

func NewSumAggregation() *SumAggregation {
	return &SumAggregation{sum: 0}
}

type SumAggregation struct {
	sum float64
}

func (s *SumAggregation) Add(value interface{}) Aggregation {
	if v, ok := dataset.ToFloat(value); ok {
		s.sum += v
	}
	return s
}

func (s *SumAggregation) Result() interface{} {
	return s.sum
}
