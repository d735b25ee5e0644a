package aggregator

import (
	"strings"

	"github.com/op/go-logging"
	a "github.com/priyanka12b/innomatics-lab/aggregator/aggFunctions"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
)

var log = logging.MustGetLogger("log")

const KeyPartsSeparator = "|"
const AggFuncColSeparator = "_"

// AggName is the result column name of an aggregation, e.g. sum_total_amount.
func AggName(agg a.AggConfig) string {
	return joinParts([]string{agg.Func, agg.Col}, AggFuncColSeparator)
}

func getGroupByColIndexes(groupBy []string, batch *ds.Dataset) ([]int, error) {
	groupByIndexes := make([]int, 0, len(groupBy))
	for _, col := range groupBy {
		idx := batch.ColumnIndex(col)
		if idx == -1 {
			return nil, errorColumnNotFound(col, batch)
		}
		groupByIndexes = append(groupByIndexes, idx)
	}
	return groupByIndexes, nil
}

func getAggColIndexes(aggregations []a.AggConfig, batch *ds.Dataset) ([]int, error) {
	aggIndexes := make([]int, 0, len(aggregations))
	for _, agg := range aggregations {
		idx := batch.ColumnIndex(agg.Col)
		if idx == -1 {
			return nil, errorColumnNotFound(agg.Col, batch)
		}
		aggIndexes = append(aggIndexes, idx)
	}
	return aggIndexes, nil
}

func hasNil(indexes []int, row []interface{}) bool {
	for _, idx := range indexes {
		if row[idx] == nil {
			return true
		}
	}
	return false
}

func getGroupByKey(groupByIndexes []int, row []interface{}) (string, []interface{}) {
	keyParts := make([]string, 0, len(groupByIndexes))
	values := make([]interface{}, 0, len(groupByIndexes))
	for _, idx := range groupByIndexes {
		keyParts = append(keyParts, ds.ToString(row[idx]))
		values = append(values, row[idx])
	}
	return joinParts(keyParts, KeyPartsSeparator), values
}

func joinParts(keyParts []string, separator string) string {
	return strings.Join(keyParts, separator)
}

// compareParts orders group keys column by column, numerically when both
// sides are numbers and as text otherwise.
func compareParts(left []interface{}, right []interface{}) int {
	for i := range left {
		lf, lok := ds.ToFloat(left[i])
		rf, rok := ds.ToFloat(right[i])
		if lok && rok {
			if lf < rf {
				return -1
			}
			if lf > rf {
				return 1
			}
			continue
		}
		if c := strings.Compare(ds.ToString(left[i]), ds.ToString(right[i])); c != 0 {
			return c
		}
	}
	return 0
}
