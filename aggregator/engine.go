package aggregator

import (
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	a "github.com/priyanka12b/innomatics-lab/aggregator/aggFunctions"
	dr "github.com/priyanka12b/innomatics-lab/aggregator/dataRetainer"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
)

type group struct {
	parts []interface{}
	aggs  []a.Aggregation
}

// Grouped holds one set of aggregations per distinct group key. Keys are
// kept in ascending order.
type Grouped struct {
	GroupBy      []string
	Aggregations []a.AggConfig
	keys         []string
	groups       map[string]*group
}

// GroupBy reduces batch by the given columns. Rows with a null in any of
// the group by columns belong to no group.
func GroupBy(batch *ds.Dataset, groupBy []string, aggregations []a.AggConfig) (*Grouped, error) {
	groupByIndexes, err := getGroupByColIndexes(groupBy, batch)
	if err != nil {
		return nil, err
	}
	aggIndexes, err := getAggColIndexes(aggregations, batch)
	if err != nil {
		return nil, err
	}
	for _, agg := range aggregations {
		if a.GetTypeOfAgg(agg.Func) == "unknown" {
			return nil, errors.Newf("unknown aggregation function %s", agg.Func)
		}
	}

	grouped := &Grouped{
		GroupBy:      groupBy,
		Aggregations: aggregations,
		keys:         make([]string, 0),
		groups:       make(map[string]*group),
	}

	skipped := 0
	for _, row := range batch.Rows {
		if len(row) != len(batch.ColumnNames) {
			return nil, errors.Newf(
				"row length %d does not match column names length %d",
				len(row), len(batch.ColumnNames),
			)
		}
		if hasNil(groupByIndexes, row) {
			skipped++
			continue
		}

		key, parts := getGroupByKey(groupByIndexes, row)
		g, exists := grouped.groups[key]
		if !exists {
			g = &group{parts: parts, aggs: make([]a.Aggregation, len(aggregations))}
			for i, agg := range aggregations {
				g.aggs[i] = a.NewAggregation(agg.Func)
			}
			grouped.groups[key] = g
			grouped.keys = append(grouped.keys, key)
		}

		for i, idx := range aggIndexes {
			g.aggs[i] = g.aggs[i].Add(row[idx])
		}
	}

	sort.SliceStable(grouped.keys, func(i, j int) bool {
		return compareParts(grouped.groups[grouped.keys[i]].parts, grouped.groups[grouped.keys[j]].parts) < 0
	})

	log.Debugf("Grouped %d rows by %v into %d groups, %d rows with null keys skipped",
		batch.Len(), groupBy, len(grouped.keys), skipped)
	return grouped, nil
}

func (g *Grouped) Len() int {
	return len(g.keys)
}

func (g *Grouped) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Label renders the key parts of a group for display.
func (g *Grouped) Label(key string) string {
	grp, ok := g.groups[key]
	if !ok {
		return ""
	}
	labels := make([]string, len(grp.parts))
	for i, part := range grp.parts {
		labels[i] = ds.ToString(part)
	}
	return strings.Join(labels, ", ")
}

// ColumnNames lists the group by columns followed by the aggregation names.
func (g *Grouped) ColumnNames() []string {
	columns := append([]string(nil), g.GroupBy...)
	for _, agg := range g.Aggregations {
		columns = append(columns, AggName(agg))
	}
	return columns
}

func (g *Grouped) aggIndex(aggName string) (int, error) {
	for i, agg := range g.Aggregations {
		if AggName(agg) == aggName {
			return i, nil
		}
	}
	return -1, errors.Newf("aggregation %s not computed, have %v", aggName, g.ColumnNames())
}

// Value returns the result of the named aggregation for a group.
func (g *Grouped) Value(key string, aggName string) (interface{}, error) {
	idx, err := g.aggIndex(aggName)
	if err != nil {
		return nil, err
	}
	grp, ok := g.groups[key]
	if !ok {
		return nil, errors.Newf("group %s not found", key)
	}
	return grp.aggs[idx].Result(), nil
}

// Rows returns one row per group: key parts then aggregation results.
func (g *Grouped) Rows() [][]interface{} {
	rows := make([][]interface{}, 0, len(g.keys))
	for _, key := range g.keys {
		rows = append(rows, g.row(key))
	}
	return rows
}

func (g *Grouped) row(key string) []interface{} {
	grp := g.groups[key]
	row := append([]interface{}(nil), grp.parts...)
	for _, agg := range grp.aggs {
		row = append(row, agg.Result())
	}
	return row
}

func (g *Grouped) numeric(key string, idx int) (float64, error) {
	result := g.groups[key].aggs[idx].Result()
	v, ok := ds.ToFloat(result)
	if !ok {
		return 0, errors.Newf("aggregation result %v is not numeric", result)
	}
	return v, nil
}

// Values returns the named aggregation of every group, in key order.
// Groups whose result is NaN are left out.
func (g *Grouped) Values(aggName string) ([]float64, error) {
	idx, err := g.aggIndex(aggName)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(g.keys))
	for _, key := range g.keys {
		v, err := g.numeric(key, idx)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values, nil
}

// Where keeps the groups whose named aggregation satisfies keep.
func (g *Grouped) Where(aggName string, keep func(v float64) bool) (*Grouped, error) {
	idx, err := g.aggIndex(aggName)
	if err != nil {
		return nil, err
	}
	kept := &Grouped{
		GroupBy:      g.GroupBy,
		Aggregations: g.Aggregations,
		keys:         make([]string, 0),
		groups:       make(map[string]*group),
	}
	for _, key := range g.keys {
		v, err := g.numeric(key, idx)
		if err != nil {
			return nil, err
		}
		if keep(v) {
			kept.keys = append(kept.keys, key)
			kept.groups[key] = g.groups[key]
		}
	}
	return kept, nil
}

// Top returns the n groups with the largest (or smallest) named
// aggregation, best first. Ties go to the group with the lower key. NaN
// results are skipped; ErrEmptyGroup is returned when nothing is left.
func (g *Grouped) Top(aggName string, n int, largest bool) ([]dr.Entry[float64], error) {
	idx, err := g.aggIndex(aggName)
	if err != nil {
		return nil, err
	}
	top := dr.NewTopN[float64](n, largest)
	for _, key := range g.keys {
		v, err := g.numeric(key, idx)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			continue
		}
		top.Insert(dr.Entry[float64]{Key: key, Aggs: g.groups[key].aggs, Value: v})
	}
	if top.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyGroup, "top %s by %v", aggName, g.GroupBy)
	}
	return top.Values(), nil
}

// Best returns the label of the single best group for aggName.
func (g *Grouped) Best(aggName string, largest bool) (string, float64, error) {
	entries, err := g.Top(aggName, 1, largest)
	if err != nil {
		return "", 0, err
	}
	return g.Label(entries[0].Key.(string)), entries[0].Value, nil
}

// SortedBy returns Rows ordered by the named aggregation. The sort is
// stable, so equal values keep key order.
func (g *Grouped) SortedBy(aggName string, descending bool) ([][]interface{}, error) {
	idx, err := g.aggIndex(aggName)
	if err != nil {
		return nil, err
	}
	keys := g.Keys()
	values := make(map[string]float64, len(keys))
	for _, key := range keys {
		v, err := g.numeric(key, idx)
		if err != nil {
			return nil, err
		}
		values[key] = v
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if descending {
			return values[keys[i]] > values[keys[j]]
		}
		return values[keys[i]] < values[keys[j]]
	})

	rows := make([][]interface{}, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, g.row(key))
	}
	return rows, nil
}
