package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/priyanka12b/innomatics-lab/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineOrders = `order_id,user_id,restaurant_id,order_date,total_amount,restaurant_name
1,1,10,2023-02-14,500,Pasta Place
2,1,11,2023-05-01,700,Thai Spice
3,2,10,2023-08-20,300,Pasta Place
`

const pipelineUsers = `[
  {"user_id": 1, "name": "Asha", "city": "Hyderabad", "membership": "Gold"},
  {"user_id": 2, "name": "Ravi", "city": "Pune", "membership": "Regular"}
]`

const pipelineRestaurants = `
CREATE TABLE IF NOT EXISTS restaurants (
    restaurant_id INTEGER,
    restaurant_name TEXT,
    cuisine TEXT,
    rating REAL
);
INSERT INTO restaurants VALUES (10, 'Pasta Place', 'Italian', 4.6);
INSERT INTO restaurants VALUES (11, 'Thai Spice', 'Thai', 3.9);
INSERT INTO restaurants VALUES (10, 'Pasta Place', 'Mexican', 2.0);
`

func pipelineConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	return &Config{
		OrdersPath:            write("orders.csv", pipelineOrders),
		UsersPath:             write("users.json", pipelineUsers),
		RestaurantsScriptPath: write("restaurants.sql", pipelineRestaurants),
		DatabasePath:          filepath.Join(dir, "restaurant.db"),
		RestaurantsTable:      "restaurants",
		OutputPath:            filepath.Join(dir, "final_food_delivery_dataset.csv"),
		LogLevel:              "INFO",
		PreviewRows:           2,
		Report:                report.DefaultParams(),
	}
}

func TestRunWritesDatasetAndReport(t *testing.T) {
	color.NoColor = true
	config := pipelineConfig(t)

	var out bytes.Buffer
	require.NoError(t, Run(config, &out))

	f, err := os.Open(config.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	header := records[0]
	assert.Equal(t, []string{"order_id", "user_id", "restaurant_id", "order_date", "total_amount"}, header[:5])
	assert.Contains(t, header, "membership")
	assert.Contains(t, header, "cuisine")
	assert.Contains(t, header, "restaurant_name_restaurant")

	cuisine := -1
	for i, name := range header {
		if name == "cuisine" {
			cuisine = i
		}
	}
	require.NotEqual(t, -1, cuisine)
	assert.Equal(t, "Italian", records[1][cuisine])
	assert.Equal(t, "Thai", records[2][cuisine])
	assert.Equal(t, "Italian", records[3][cuisine])

	text := out.String()
	assert.Contains(t, text, "Orders (2 of 3 rows)")
	assert.Contains(t, text, "Users (2 of 2 rows)")
	assert.Contains(t, text, "Restaurants (2 of 2 rows)")
	assert.NotContains(t, text, "Mexican")
	assert.Contains(t, text, "Orders rows: 3\n")
	assert.Contains(t, text, "Final rows: 3\n")
	assert.Contains(t, text, "Restaurant columns: [restaurant_id restaurant_name cuisine rating]\n")
	assert.Contains(t, text, "1. Highest revenue city among Gold members: Hyderabad\n")
	assert.Contains(t, text, "7. Percentage of orders placed by Gold members: 67\n")
	assert.Contains(t, text, "8. Highest average order value restaurant below the order limit: 11\n")
	assert.Contains(t, text, "11. Orders placed by Gold members: 2\n")
	assert.Contains(t, text, "13. Distinct users: 2\n")
}

func TestRunWithoutPreviews(t *testing.T) {
	color.NoColor = true
	config := pipelineConfig(t)
	config.PreviewRows = 0

	var out bytes.Buffer
	require.NoError(t, Run(config, &out))
	assert.NotContains(t, out.String(), "Orders (")
}

func TestRunFailsOnMissingOrders(t *testing.T) {
	config := pipelineConfig(t)
	config.OrdersPath = filepath.Join(t.TempDir(), "missing.csv")

	var out bytes.Buffer
	err := Run(config, &out)
	assert.ErrorContains(t, err, "load orders")

	_, statErr := os.Stat(config.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}
