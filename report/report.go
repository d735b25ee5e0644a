package report

import (
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
	"github.com/priyanka12b/innomatics-lab/filter"
)

var log = logging.MustGetLogger("log")

// Columns of the denormalized dataset read by the queries.
const (
	colOrderID      = "order_id"
	colUserID       = "user_id"
	colRestaurantID = "restaurant_id"
	colTotalAmount  = "total_amount"
	colOrderDate    = "order_date"
	colMembership   = "membership"
	colCity         = "city"
	colCuisine      = "cuisine"
	colRating       = "rating"

	colRatingRange = "rating_range"
	colQuarter     = "quarter"
)

// Params holds the thresholds and labels the queries are defined with.
type Params struct {
	GoldMembership      string  `mapstructure:"gold-membership"`
	HighValueThreshold  float64 `mapstructure:"high-value-threshold"`
	RevenueQuantile     float64 `mapstructure:"revenue-quantile"`
	MaxRestaurantOrders int     `mapstructure:"max-restaurant-orders"`
	FocusCity           string  `mapstructure:"focus-city"`
	MinTopRating        float64 `mapstructure:"min-top-rating"`
}

func DefaultParams() Params {
	return Params{
		GoldMembership:      "Gold",
		HighValueThreshold:  1000,
		RevenueQuantile:     0.75,
		MaxRestaurantOrders: 20,
		FocusCity:           "Hyderabad",
		MinTopRating:        4.5,
	}
}

// Result is the outcome of one query: a scalar or label in Value and, for
// tabular queries, Columns and Rows as well.
type Result struct {
	QueryId int
	Title   string
	Value   interface{}
	Columns []string
	Rows    [][]interface{}
}

func (r Result) IsTable() bool {
	return len(r.Columns) > 0
}

// queryContext is shared read-only by every query of a run.
type queryContext struct {
	all    *ds.Dataset
	gold   *ds.Dataset
	params Params
}

type query struct {
	title string
	run   func(qc *queryContext) (Result, error)
}

// Run evaluates every query over the denormalized dataset, in order. The
// first failing query stops the run.
func Run(all *ds.Dataset, params Params) ([]Result, error) {
	gold, err := filter.ByValue(all, colMembership, params.GoldMembership)
	if err != nil {
		return nil, errors.Wrap(err, "select gold members")
	}
	log.Debugf("%d of %d rows belong to %s members", gold.Len(), all.Len(), params.GoldMembership)

	qc := &queryContext{all: all, gold: gold, params: params}
	results := make([]Result, 0, len(queries))
	for i, q := range queries {
		result, err := q.run(qc)
		if err != nil {
			return nil, errors.Wrapf(err, "query %d (%s)", i+1, q.title)
		}
		result.QueryId = i + 1
		result.Title = q.title
		log.Debugf("Query %d done: %v", result.QueryId, result.Value)
		results = append(results, result)
	}
	return results, nil
}
