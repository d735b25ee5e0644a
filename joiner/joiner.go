package joiner

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	UserKey       = "user_id"
	RestaurantKey = "restaurant_id"

	UserSide       = "user"
	RestaurantSide = "restaurant"
)

// NormalizeKey rewrites the key column as text in canonical form.
func NormalizeKey(df dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	if findColumnIndex(key, df.Names()) == -1 {
		return df, errors.Newf("join key (%s) not found in columns %v", key, df.Names())
	}
	records := df.Col(key).Records()
	for i := range records {
		records[i] = canonicalKey(records[i])
	}
	normalized := df.Mutate(series.New(records, series.String, key))
	if normalized.Err != nil {
		return df, errors.Wrapf(normalized.Err, "normalize key %s", key)
	}
	return normalized, nil
}

// LeftJoin keeps every row of left and attaches the matching right row,
// or nulls when there is none. Right side columns other than key that
// clash with a left column are renamed <name>_<side>. The result lists
// the left columns first, in their original order.
func LeftJoin(left dataframe.DataFrame, right dataframe.DataFrame, key string, side string) (dataframe.DataFrame, error) {
	if left.Err != nil {
		return left, errors.Wrap(left.Err, "left join: left side")
	}
	if right.Err != nil {
		return left, errors.Wrap(right.Err, "left join: right side")
	}

	left, err := NormalizeKey(left, key)
	if err != nil {
		return left, errors.Wrap(err, "left join: left side")
	}
	right, err = NormalizeKey(right, key)
	if err != nil {
		return left, errors.Wrap(err, "left join: right side")
	}

	leftNames := left.Names()
	order := append([]string(nil), leftNames...)
	for _, name := range right.Names() {
		if name == key {
			continue
		}
		if findColumnIndex(name, leftNames) != -1 {
			renamed := name + "_" + side
			if findColumnIndex(renamed, leftNames) != -1 || findColumnIndex(renamed, right.Names()) != -1 {
				return left, errors.Newf("left join: cannot rename %s, %s already exists", name, renamed)
			}
			log.Debugf("Renaming %s column %s to %s", side, name, renamed)
			right = right.Rename(renamed, name)
			if right.Err != nil {
				return left, errors.Wrapf(right.Err, "left join: rename %s", name)
			}
			name = renamed
		}
		order = append(order, name)
	}

	joined := left.LeftJoin(right, key)
	if joined.Err != nil {
		return left, errors.Wrapf(joined.Err, "left join on %s", key)
	}
	joined = joined.Select(order)
	if joined.Err != nil {
		return left, errors.Wrapf(joined.Err, "left join on %s: reorder columns", key)
	}
	return joined, nil
}

// Denormalize builds one row per order with its user and restaurant
// attributes. Users and restaurants are deduplicated by key first, which
// keeps the row count equal to the orders row count.
func Denormalize(orders, users, restaurants dataframe.DataFrame) (dataframe.DataFrame, error) {
	users, err := DropDuplicates(users, UserKey)
	if err != nil {
		return orders, errors.Wrap(err, "users")
	}
	restaurants, err = DropDuplicates(restaurants, RestaurantKey)
	if err != nil {
		return orders, errors.Wrap(err, "restaurants")
	}

	ordersUsers, err := LeftJoin(orders, users, UserKey, UserSide)
	if err != nil {
		return orders, errors.Wrap(err, "join orders with users")
	}
	final, err := LeftJoin(ordersUsers, restaurants, RestaurantKey, RestaurantSide)
	if err != nil {
		return orders, errors.Wrap(err, "join orders with restaurants")
	}

	if final.Nrow() != orders.Nrow() {
		return orders, errors.Newf(
			"denormalized table has %d rows, orders has %d",
			final.Nrow(), orders.Nrow(),
		)
	}
	log.Infof("Denormalized %d orders into %d columns", final.Nrow(), final.Ncol())
	return final, nil
}
