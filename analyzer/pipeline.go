package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	ds "github.com/priyanka12b/innomatics-lab/dataset"
	"github.com/priyanka12b/innomatics-lab/joiner"
	"github.com/priyanka12b/innomatics-lab/loader"
	"github.com/priyanka12b/innomatics-lab/persistance"
	"github.com/priyanka12b/innomatics-lab/report"
)

// Run loads the three sources, writes the denormalized dataset to
// config.OutputPath and prints previews, validation figures and the report
// to out.
func Run(config *Config, out io.Writer) error {
	orders, err := loader.LoadOrders(config.OrdersPath)
	if err != nil {
		return errors.Wrap(err, "load orders")
	}
	users, err := loader.LoadUsers(config.UsersPath)
	if err != nil {
		return errors.Wrap(err, "load users")
	}
	restaurants, err := loader.LoadRestaurants(config.DatabasePath, config.RestaurantsScriptPath, config.RestaurantsTable)
	if err != nil {
		return errors.Wrap(err, "load restaurants")
	}
	log.Infof("Loaded %d orders, %d users and %d restaurants", orders.Nrow(), users.Nrow(), restaurants.Nrow())

	restaurants, err = joiner.DropDuplicates(restaurants, joiner.RestaurantKey)
	if err != nil {
		return errors.Wrap(err, "deduplicate restaurants")
	}

	if config.PreviewRows > 0 {
		previews := []struct {
			title string
			df    dataframe.DataFrame
		}{
			{"Orders", orders},
			{"Users", users},
			{"Restaurants", restaurants},
		}
		for _, p := range previews {
			if err := report.PrintPreview(out, p.title, p.df, config.PreviewRows); err != nil {
				return err
			}
		}
	}

	final, err := joiner.Denormalize(orders, users, restaurants)
	if err != nil {
		return errors.Wrap(err, "denormalize")
	}

	if err := persistance.WriteCSV(config.OutputPath, final); err != nil {
		return errors.Wrap(err, "persist dataset")
	}

	if err := report.PrintValidation(out, orders.Nrow(), final.Nrow(), restaurants.Names()); err != nil {
		return err
	}

	dataset, err := ds.FromDataFrame(final)
	if err != nil {
		return errors.Wrap(err, "convert dataset")
	}

	results, err := report.Run(dataset, config.Report)
	if err != nil {
		return errors.Wrap(err, "compute report")
	}
	return report.Print(out, results)
}
