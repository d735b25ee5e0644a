package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `order_id,user_id,restaurant_id,order_date,total_amount,restaurant_name
1,1,10,2023-02-14,250.5,Pasta Place
2,2,11,2023-07-01,,Thai Spice
`

const usersJSON = `[
  {"user_id": 1, "name": "Asha", "city": "Pune", "membership": "Gold"},
  {"user_id": 2, "name": "Ravi", "city": "Hyderabad", "membership": null}
]`

const restaurantsSQL = `
CREATE TABLE IF NOT EXISTS restaurants (
    restaurant_id INTEGER,
    restaurant_name TEXT,
    cuisine TEXT,
    rating REAL
);
INSERT INTO restaurants VALUES (10, 'Pasta Place', 'Italian', 4.2);
INSERT INTO restaurants VALUES (11, 'Thai Spice', 'Thai', NULL);
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOrders(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.csv", ordersCSV)

	orders, err := LoadOrders(path)
	require.NoError(t, err)

	assert.Equal(t, 2, orders.Nrow())
	assert.Equal(t, []string{"1", "2"}, orders.Col("user_id").Records())
	assert.Equal(t, 250.5, orders.Col("total_amount").Elem(0).Float())
	assert.True(t, orders.Col("total_amount").Elem(1).IsNA())
	assert.Equal(t, "2023-07-01", orders.Col("order_date").Elem(1).String())
}

func TestLoadOrdersMissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.csv", "order_id,user_id\n1,1\n")
	_, err := LoadOrders(path)
	assert.Error(t, err)
}

func TestLoadOrdersMalformedAmount(t *testing.T) {
	content := "order_id,user_id,restaurant_id,total_amount,order_date\n" +
		"1,1,10,abc,2023-02-01\n" +
		"2,1,10,50,2023-02-02\n"
	path := writeFile(t, t.TempDir(), "orders.csv", content)

	_, err := LoadOrders(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_amount")
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestLoadOrdersNullSpellingsAreNotMalformed(t *testing.T) {
	content := "order_id,user_id,restaurant_id,total_amount,order_date\n" +
		"1,1,10,NA,2023-02-01\n" +
		"2,1,10,NaN,2023-02-02\n" +
		"3,1,10,,2023-02-03\n"
	path := writeFile(t, t.TempDir(), "orders.csv", content)

	orders, err := LoadOrders(path)
	require.NoError(t, err)
	for i := 0; i < orders.Nrow(); i++ {
		assert.True(t, orders.Col("total_amount").Elem(i).IsNA())
	}
}

func TestLoadOrdersMissingFile(t *testing.T) {
	_, err := LoadOrders(filepath.Join(t.TempDir(), "orders.csv"))
	assert.Error(t, err)
}

func TestLoadUsers(t *testing.T) {
	path := writeFile(t, t.TempDir(), "users.json", usersJSON)

	users, err := LoadUsers(path)
	require.NoError(t, err)

	assert.Equal(t, 2, users.Nrow())
	assert.Equal(t, []string{"user_id", "name", "city", "membership"}, users.Names())
	assert.Equal(t, []string{"1", "2"}, users.Col("user_id").Records())
	assert.Equal(t, "Gold", users.Col("membership").Elem(0).String())
	assert.True(t, users.Col("membership").Elem(1).IsNA())
}

func TestLoadUsersKeepsFirstRecordKeyOrder(t *testing.T) {
	content := `[
  {"membership": "Gold", "user_id": 1, "city": "Pune"},
  {"city": "Delhi", "membership": "Regular", "user_id": 2}
]`
	path := writeFile(t, t.TempDir(), "users.json", content)

	users, err := LoadUsers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"membership", "user_id", "city"}, users.Names())
	assert.Equal(t, []string{"1", "2"}, users.Col("user_id").Records())
}

func TestLoadUsersMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "users.json", `{"user_id": `)
	_, err := LoadUsers(path)
	assert.Error(t, err)
}

func TestLoadRestaurants(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "restaurants.sql", restaurantsSQL)
	db := filepath.Join(dir, "restaurant.db")

	restaurants, err := LoadRestaurants(db, script, "restaurants")
	require.NoError(t, err)

	assert.Equal(t, []string{"restaurant_id", "restaurant_name", "cuisine", "rating"}, restaurants.Names())
	assert.Equal(t, []string{"10", "11"}, restaurants.Col("restaurant_id").Records())
	assert.Equal(t, 4.2, restaurants.Col("rating").Elem(0).Float())
	assert.True(t, restaurants.Col("rating").Elem(1).IsNA())
}

func TestLoadRestaurantsRerunAppendsDuplicates(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "restaurants.sql", restaurantsSQL)
	db := filepath.Join(dir, "restaurant.db")

	_, err := LoadRestaurants(db, script, "restaurants")
	require.NoError(t, err)
	again, err := LoadRestaurants(db, script, "restaurants")
	require.NoError(t, err)

	assert.Equal(t, 4, again.Nrow())
}

func TestLoadRestaurantsScriptError(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "restaurants.sql", "CREATE TABLE restaurants (;")
	_, err := LoadRestaurants(filepath.Join(dir, "restaurant.db"), script, "restaurants")
	assert.Error(t, err)
}

func TestLoadRestaurantsMalformedRating(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "restaurants.sql", `
CREATE TABLE restaurants (restaurant_id INTEGER, cuisine TEXT, rating REAL);
INSERT INTO restaurants VALUES (10, 'Italian', 4.2);
INSERT INTO restaurants VALUES (11, 'Thai', 'excellent');
`)

	_, err := LoadRestaurants(filepath.Join(dir, "restaurant.db"), script, "restaurants")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
	assert.Contains(t, err.Error(), `"excellent"`)
}

func TestLoadRestaurantsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "restaurants.sql",
		"CREATE TABLE restaurants (restaurant_id INTEGER, cuisine TEXT, rating REAL);")

	restaurants, err := LoadRestaurants(filepath.Join(dir, "restaurant.db"), script, "restaurants")
	require.NoError(t, err)
	assert.Equal(t, 0, restaurants.Nrow())
	assert.Equal(t, []string{"restaurant_id", "cuisine", "rating"}, restaurants.Names())
}
