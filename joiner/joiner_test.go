package joiner

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvFrame(t *testing.T, content string, types map[string]series.Type) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(content), dataframe.WithTypes(types))
	require.NoError(t, df.Err)
	return df
}

var ordersTypes = map[string]series.Type{
	"order_id":      series.String,
	"user_id":       series.String,
	"restaurant_id": series.String,
	"total_amount":  series.Float,
}

var usersTypes = map[string]series.Type{"user_id": series.String}

var restaurantTypes = map[string]series.Type{
	"restaurant_id": series.String,
	"rating":        series.Float,
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "10", canonicalKey("10"))
	assert.Equal(t, "10", canonicalKey(" 10.0 "))
	assert.Equal(t, "-3", canonicalKey("-3"))
	assert.Equal(t, "10.5", canonicalKey("10.5"))
	assert.Equal(t, "R-10", canonicalKey("R-10"))
	assert.Equal(t, nullKey, canonicalKey(""))
	assert.Equal(t, nullKey, canonicalKey("NaN"))
}

func TestDropDuplicatesKeepsFirst(t *testing.T) {
	restaurants := csvFrame(t,
		"restaurant_id,cuisine,rating\n10,Italian,4.2\n11,Thai,3.9\n10,Mexican,2.0\n10.0,Chinese,1.0\n12,Indian,4.8\n",
		restaurantTypes,
	)

	deduped, err := DropDuplicates(restaurants, RestaurantKey)
	require.NoError(t, err)

	assert.Equal(t, 3, deduped.Nrow())
	assert.Equal(t, []string{"Italian", "Thai", "Indian"}, deduped.Col("cuisine").Records())

	seen := map[string]bool{}
	for _, id := range deduped.Col(RestaurantKey).Records() {
		key := canonicalKey(id)
		assert.False(t, seen[key], "duplicate restaurant id %s", id)
		seen[key] = true
	}
}

func TestDropDuplicatesMissingKey(t *testing.T) {
	users := csvFrame(t, "id,city\n1,Pune\n", nil)
	_, err := DropDuplicates(users, UserKey)
	assert.Error(t, err)
}

func TestLeftJoinKeepsUnmatchedRows(t *testing.T) {
	orders := csvFrame(t,
		"order_id,user_id,restaurant_id,total_amount\n1,1,10,50\n2,2,11,20\n3,7,10,30\n",
		ordersTypes,
	)
	users := csvFrame(t,
		"user_id,membership,city\n1,Gold,Pune\n2,Regular,Delhi\n",
		usersTypes,
	)

	joined, err := LeftJoin(orders, users, UserKey, UserSide)
	require.NoError(t, err)

	assert.Equal(t, orders.Nrow(), joined.Nrow())
	assert.Equal(t,
		[]string{"order_id", "user_id", "restaurant_id", "total_amount", "membership", "city"},
		joined.Names(),
	)
	assert.Equal(t, []string{"1", "2", "3"}, joined.Col("order_id").Records())

	membership := joined.Col("membership")
	assert.Equal(t, "Gold", membership.Elem(0).String())
	assert.Equal(t, "Regular", membership.Elem(1).String())
	assert.True(t, membership.Elem(2).IsNA())
}

func TestLeftJoinRenamesClashingColumns(t *testing.T) {
	left := csvFrame(t, "order_id,restaurant_id,city\n1,10,Pune\n", ordersTypes)
	right := csvFrame(t, "restaurant_id,city,rating\n10,Mumbai,4.1\n", restaurantTypes)

	joined, err := LeftJoin(left, right, RestaurantKey, RestaurantSide)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "restaurant_id", "city", "city_restaurant", "rating"}, joined.Names())
	assert.Equal(t, "Pune", joined.Col("city").Elem(0).String())
	assert.Equal(t, "Mumbai", joined.Col("city_restaurant").Elem(0).String())
}

func TestLeftJoinMissingKey(t *testing.T) {
	left := csvFrame(t, "order_id,total_amount\n1,5\n", nil)
	right := csvFrame(t, "user_id,city\n1,Pune\n", usersTypes)
	_, err := LeftJoin(left, right, UserKey, UserSide)
	assert.Error(t, err)
}

func TestDenormalizeSingleOrder(t *testing.T) {
	orders := csvFrame(t, "order_id,user_id,restaurant_id,total_amount\n1,1,10,50\n", ordersTypes)
	users := csvFrame(t, "user_id,membership,city\n1,Gold,Pune\n", usersTypes)
	restaurants := csvFrame(t, "restaurant_id,cuisine,city,rating\n10,Italian,Pune,4.2\n", restaurantTypes)

	final, err := Denormalize(orders, users, restaurants)
	require.NoError(t, err)

	require.Equal(t, 1, final.Nrow())
	assert.Equal(t, "Gold", final.Col("membership").Elem(0).String())
	assert.Equal(t, "Italian", final.Col("cuisine").Elem(0).String())
	assert.Equal(t, "Pune", final.Col("city").Elem(0).String())
	assert.Equal(t, 4.2, final.Col("rating").Elem(0).Float())
}

func TestDenormalizePreservesOrderCount(t *testing.T) {
	orders := csvFrame(t,
		"order_id,user_id,restaurant_id,total_amount\n1,1,10,50\n2,1,10,60\n3,2,99,70\n4,,10,80\n5,3,11,90\n",
		ordersTypes,
	)
	users := csvFrame(t,
		"user_id,membership,city\n1,Gold,Pune\n1,Regular,Delhi\n2,Regular,Agra\n",
		usersTypes,
	)
	restaurants := csvFrame(t,
		"restaurant_id,cuisine,rating\n10,Italian,4.2\n10,Italian,4.2\n11,Thai,3.1\n11,Thai,3.1\n",
		restaurantTypes,
	)

	final, err := Denormalize(orders, users, restaurants)
	require.NoError(t, err)

	assert.Equal(t, orders.Nrow(), final.Nrow())
	assert.Equal(t, []string{"Gold", "Gold", "Regular", "NaN", "NaN"}, final.Col("membership").Records())
	assert.Equal(t, []string{"Italian", "Italian", "NaN", "Italian", "Thai"}, final.Col("cuisine").Records())
}
