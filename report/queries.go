package report

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/priyanka12b/innomatics-lab/aggregator"
	a "github.com/priyanka12b/innomatics-lab/aggregator/aggFunctions"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
	"github.com/priyanka12b/innomatics-lab/filter"
)

var (
	sumAmount     = a.AggConfig{Col: colTotalAmount, Func: "sum"}
	meanAmount    = a.AggConfig{Col: colTotalAmount, Func: "mean"}
	countOrders   = a.AggConfig{Col: colOrderID, Func: "count"}
	distinctRests = a.AggConfig{Col: colRestaurantID, Func: "nunique"}
)

var queries = []query{
	{"Highest revenue city among Gold members", topGoldRevenueCity},
	{"Cuisine with the highest average order value", topAOVCuisine},
	{"Users with total order value above the threshold", highValueUsers},
	{"Rating range with the highest revenue", topRevenueRatingRange},
	{"Highest average order value city among Gold members", topGoldAOVCity},
	{"High revenue cuisine with the fewest restaurants", fewestRestaurantsHighRevenueCuisine},
	{"Percentage of orders placed by Gold members", goldOrdersPercentage},
	{"Highest average order value restaurant below the order limit", topAOVSmallRestaurant},
	{"Revenue by membership and cuisine", revenueByMembershipCuisine},
	{"Revenue by quarter", revenueByQuarter},
	{"Orders placed by Gold members", goldOrders},
	{"Revenue from the focus city", focusCityRevenue},
	{"Distinct users", distinctUsers},
	{"Average order value of Gold members", goldAOV},
	{"Orders with a top rating", topRatedOrders},
	{"Gold orders in the top Gold revenue city", goldOrdersInTopCity},
}

func bestGroup(batch *ds.Dataset, groupBy string, agg a.AggConfig, largest bool) (string, error) {
	grouped, err := aggregator.GroupBy(batch, []string{groupBy}, []a.AggConfig{agg})
	if err != nil {
		return "", err
	}
	label, _, err := grouped.Best(aggregator.AggName(agg), largest)
	return label, err
}

func roundHalfEven(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}

func scalar(v interface{}) Result {
	return Result{Value: v}
}

func topGoldRevenueCity(qc *queryContext) (Result, error) {
	city, err := bestGroup(qc.gold, colCity, sumAmount, true)
	return scalar(city), err
}

func topAOVCuisine(qc *queryContext) (Result, error) {
	cuisine, err := bestGroup(qc.all, colCuisine, meanAmount, true)
	return scalar(cuisine), err
}

func highValueUsers(qc *queryContext) (Result, error) {
	perUser, err := aggregator.GroupBy(qc.all, []string{colUserID}, []a.AggConfig{sumAmount})
	if err != nil {
		return Result{}, err
	}
	big, err := perUser.Where(aggregator.AggName(sumAmount), func(v float64) bool {
		return v > qc.params.HighValueThreshold
	})
	if err != nil {
		return Result{}, err
	}
	return scalar(big.Len()), nil
}

func topRevenueRatingRange(qc *queryContext) (Result, error) {
	binned, err := filter.AddRatingRange(qc.all, colRating, colRatingRange)
	if err != nil {
		return Result{}, err
	}
	label, err := bestGroup(binned, colRatingRange, sumAmount, true)
	return scalar(label), err
}

func topGoldAOVCity(qc *queryContext) (Result, error) {
	city, err := bestGroup(qc.gold, colCity, meanAmount, true)
	return scalar(city), err
}

func fewestRestaurantsHighRevenueCuisine(qc *queryContext) (Result, error) {
	summary, err := aggregator.GroupBy(qc.all, []string{colCuisine}, []a.AggConfig{distinctRests, sumAmount})
	if err != nil {
		return Result{}, err
	}
	revenues, err := summary.Values(aggregator.AggName(sumAmount))
	if err != nil {
		return Result{}, err
	}
	threshold, err := aggregator.Quantile(revenues, qc.params.RevenueQuantile)
	if err != nil {
		return Result{}, err
	}
	top, err := summary.Where(aggregator.AggName(sumAmount), func(v float64) bool {
		return v >= threshold
	})
	if err != nil {
		return Result{}, err
	}
	cuisine, _, err := top.Best(aggregator.AggName(distinctRests), false)
	return scalar(cuisine), err
}

func goldOrdersPercentage(qc *queryContext) (Result, error) {
	if qc.all.Len() == 0 {
		return Result{}, errors.Wrap(aggregator.ErrEmptyGroup, "percentage of an empty dataset")
	}
	pct := float64(qc.gold.Len()) / float64(qc.all.Len()) * 100
	return scalar(int(roundHalfEven(pct, 0))), nil
}

func topAOVSmallRestaurant(qc *queryContext) (Result, error) {
	stats, err := aggregator.GroupBy(qc.all, []string{colRestaurantID}, []a.AggConfig{countOrders, meanAmount})
	if err != nil {
		return Result{}, err
	}
	small, err := stats.Where(aggregator.AggName(countOrders), func(v float64) bool {
		return v < float64(qc.params.MaxRestaurantOrders)
	})
	if err != nil {
		return Result{}, err
	}
	restaurant, _, err := small.Best(aggregator.AggName(meanAmount), true)
	return scalar(restaurant), err
}

func revenueByMembershipCuisine(qc *queryContext) (Result, error) {
	grouped, err := aggregator.GroupBy(qc.all, []string{colMembership, colCuisine}, []a.AggConfig{sumAmount})
	if err != nil {
		return Result{}, err
	}
	rows, err := grouped.SortedBy(aggregator.AggName(sumAmount), true)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, errors.Wrap(aggregator.ErrEmptyGroup, "no membership and cuisine pairs")
	}
	return Result{
		Value:   ds.ToString(rows[0][0]) + ", " + ds.ToString(rows[0][1]),
		Columns: []string{colMembership, colCuisine, colTotalAmount},
		Rows:    rows,
	}, nil
}

func revenueByQuarter(qc *queryContext) (Result, error) {
	withQuarter, err := filter.AddQuarter(qc.all, colOrderDate, colQuarter)
	if err != nil {
		return Result{}, err
	}
	grouped, err := aggregator.GroupBy(withQuarter, []string{colQuarter}, []a.AggConfig{sumAmount})
	if err != nil {
		return Result{}, err
	}
	best, _, err := grouped.Best(aggregator.AggName(sumAmount), true)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Value:   best,
		Columns: []string{colQuarter, colTotalAmount},
		Rows:    grouped.Rows(),
	}, nil
}

func goldOrders(qc *queryContext) (Result, error) {
	return scalar(qc.gold.Len()), nil
}

func focusCityRevenue(qc *queryContext) (Result, error) {
	city, err := filter.ByValue(qc.all, colCity, qc.params.FocusCity)
	if err != nil {
		return Result{}, err
	}
	total, err := aggregator.Reduce(city, colTotalAmount, "sum")
	if err != nil {
		return Result{}, err
	}
	return scalar(int64(roundHalfEven(total.(float64), 0))), nil
}

func distinctUsers(qc *queryContext) (Result, error) {
	count, err := aggregator.Reduce(qc.all, colUserID, "nunique")
	return scalar(count), err
}

func goldAOV(qc *queryContext) (Result, error) {
	mean, err := aggregator.Mean(qc.gold, colTotalAmount)
	if err != nil {
		return Result{}, err
	}
	return scalar(roundHalfEven(mean, 2)), nil
}

func topRatedOrders(qc *queryContext) (Result, error) {
	top, err := filter.ByMinimum(qc.all, colRating, qc.params.MinTopRating)
	if err != nil {
		return Result{}, err
	}
	return scalar(top.Len()), nil
}

func goldOrdersInTopCity(qc *queryContext) (Result, error) {
	city, err := bestGroup(qc.gold, colCity, sumAmount, true)
	if err != nil {
		return Result{}, err
	}
	orders, err := filter.ByValue(qc.gold, colCity, city)
	if err != nil {
		return Result{}, err
	}
	return scalar(orders.Len()), nil
}
