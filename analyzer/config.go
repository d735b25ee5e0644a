package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/priyanka12b/innomatics-lab/report"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigFilePath = "config.json"
const envFilePath = ".env"

// Config represents the application's configuration structure.
type Config struct {
	OrdersPath            string `json:"orders-path" mapstructure:"orders-path"`
	UsersPath             string `json:"users-path" mapstructure:"users-path"`
	RestaurantsScriptPath string `json:"restaurants-script-path" mapstructure:"restaurants-script-path"`
	DatabasePath          string `json:"database-path" mapstructure:"database-path"`
	RestaurantsTable      string `json:"restaurants-table" mapstructure:"restaurants-table"`
	OutputPath            string `json:"output-path" mapstructure:"output-path"`
	LogLevel              string `json:"log-level" mapstructure:"log-level"`
	PreviewRows           int    `json:"preview-rows" mapstructure:"preview-rows"`

	Report report.Params `mapstructure:",squash"`
}

// field: default value
var optionalFields = map[string]interface{}{
	"orders-path":             "orders.csv",
	"users-path":              "users.json",
	"restaurants-script-path": "restaurants.sql",
	"database-path":           "restaurant.db",
	"restaurants-table":       "restaurants",
	"output-path":             "final_food_delivery_dataset.csv",
	"log-level":               "INFO",
	"preview-rows":            5,
	"gold-membership":         "Gold",
	"high-value-threshold":    1000,
	"revenue-quantile":        0.75,
	"max-restaurant-orders":   20,
	"focus-city":              "Hyderabad",
	"min-top-rating":          4.5,
}

// InitConfig reads configuration from a JSON file, a .env file and
// environment variables. Environment variables take precedence over the
// config file, and every field falls back to its default. A missing config
// file is not an error.
func InitConfig(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("analyzer", pflag.ContinueOnError)
	configPath := flags.String("config", defaultConfigFilePath, "path to the JSON config file")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, "could not parse flags")
	}

	if err := godotenv.Load(envFilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "could not load %s", envFilePath)
	}

	v := viper.New()

	v.SetConfigFile(*configPath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for field, defaultValue := range optionalFields {
		v.SetDefault(field, defaultValue)
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, "could not read config")
		}
		log.Debugf("No config file at %s, using defaults and environment", *configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	paths := map[string]string{
		"orders-path":             c.OrdersPath,
		"users-path":              c.UsersPath,
		"restaurants-script-path": c.RestaurantsScriptPath,
		"database-path":           c.DatabasePath,
		"restaurants-table":       c.RestaurantsTable,
		"output-path":             c.OutputPath,
	}
	for field, value := range paths {
		if value == "" {
			return errors.Newf("config field %s must not be empty", field)
		}
	}

	if c.PreviewRows < 0 {
		return errors.Newf("preview-rows must not be negative, got %d", c.PreviewRows)
	}
	if q := c.Report.RevenueQuantile; q < 0 || q > 1 {
		return errors.Newf("revenue-quantile must be within [0, 1], got %v", q)
	}
	if c.Report.MaxRestaurantOrders <= 0 {
		return errors.Newf("max-restaurant-orders must be positive, got %d", c.Report.MaxRestaurantOrders)
	}
	if c.Report.GoldMembership == "" {
		return errors.New("gold-membership must not be empty")
	}
	return nil
}
