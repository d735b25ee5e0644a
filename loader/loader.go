package loader

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

var (
	orderColumns      = []string{"order_id", "user_id", "restaurant_id", "total_amount", "order_date"}
	userColumns       = []string{"user_id", "membership", "city"}
	restaurantColumns = []string{"restaurant_id", "cuisine", "rating"}
)

// Identifiers stay text so the joiner decides how keys compare.
var (
	orderTypes = map[string]series.Type{
		"order_id":      series.String,
		"user_id":       series.String,
		"restaurant_id": series.String,
		"total_amount":  series.Float,
		"order_date":    series.String,
		"rating":        series.Float,
	}
	userTypes = map[string]series.Type{
		"user_id":    series.String,
		"membership": series.String,
		"city":       series.String,
	}
	restaurantTypes = map[string]series.Type{
		"restaurant_id": series.String,
		"cuisine":       series.String,
		"city":          series.String,
		"rating":        series.Float,
	}
)

// Cell spellings read as null. Empty cells are null, as in most CSV
// tooling.
var nanValues = []string{"NA", "NaN", "<nil>", ""}

// LoadOrders reads the orders CSV file.
func LoadOrders(path string) (dataframe.DataFrame, error) {
	data, err := readFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := loadTyped(func(options ...dataframe.LoadOption) dataframe.DataFrame {
		return dataframe.ReadCSV(bytes.NewReader(data), options...)
	}, path, orderTypes, orderColumns)
	if err != nil {
		return df, err
	}
	log.Infof("Loaded %d rows from %s", df.Nrow(), path)
	return df, nil
}

// LoadUsers reads the users JSON file, an array of records. Columns follow
// the key order of the first record.
func LoadUsers(path string) (dataframe.DataFrame, error) {
	data, err := readFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := loadTyped(func(options ...dataframe.LoadOption) dataframe.DataFrame {
		return dataframe.ReadJSON(bytes.NewReader(data), options...)
	}, path, userTypes, userColumns)
	if err != nil {
		return df, err
	}

	keys, err := jsonKeyOrder(data)
	if err != nil {
		return df, errors.Wrapf(err, "load %s", path)
	}
	df = df.Select(columnOrder(keys, df.Names()))
	if df.Err != nil {
		return df, errors.Wrapf(df.Err, "load %s: reorder columns", path)
	}
	log.Infof("Loaded %d rows from %s", df.Nrow(), path)
	return df, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return data, nil
}

// loadTyped loads a table with types applied, then loads it again as plain
// text to tell null cells apart from cells that failed to parse.
func loadTyped(
	load func(options ...dataframe.LoadOption) dataframe.DataFrame,
	source string,
	types map[string]series.Type,
	required []string,
) (dataframe.DataFrame, error) {
	df, err := checkColumns(load(dataframe.WithTypes(types), dataframe.NaNValues(nanValues)), source, required)
	if err != nil {
		return df, err
	}
	raw := load(dataframe.DetectTypes(false), dataframe.NaNValues(nanValues))
	if err := checkNumeric(df, raw, source, types); err != nil {
		return df, err
	}
	return df, nil
}

func checkColumns(df dataframe.DataFrame, source string, required []string) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.Wrapf(df.Err, "load %s", source)
	}
	names := df.Names()
	for _, col := range required {
		found := false
		for _, name := range names {
			if name == col {
				found = true
				break
			}
		}
		if !found {
			return df, errors.Newf("load %s: missing required column %s, have %v", source, col, names)
		}
	}
	return df, nil
}

// checkNumeric fails on any numeric cell that is null after typing while
// its text is not one of the null spellings.
func checkNumeric(typed dataframe.DataFrame, raw dataframe.DataFrame, source string, types map[string]series.Type) error {
	if raw.Err != nil {
		return errors.Wrapf(raw.Err, "load %s", source)
	}
	for _, name := range typed.Names() {
		t, ok := types[name]
		if !ok || (t != series.Float && t != series.Int) {
			continue
		}
		typedCol := typed.Col(name)
		rawCol := raw.Col(name)
		if rawCol.Err != nil {
			return errors.Wrapf(rawCol.Err, "load %s", source)
		}
		for i := 0; i < typedCol.Len(); i++ {
			if typedCol.Elem(i).IsNA() && !rawCol.Elem(i).IsNA() {
				return errors.Newf("load %s: row %d: %s value %q is not a number",
					source, i+1, name, rawCol.Elem(i).String())
			}
		}
	}
	return nil
}

// jsonKeyOrder returns the keys of the first object of a JSON array, in
// the order they are written.
func jsonKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return nil, errors.New("expected an array of records")
	}
	if !dec.More() {
		return nil, nil
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errors.New("expected a record object")
	}

	keys := make([]string, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Newf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// columnOrder lists the known keys present in names first, then the rest
// of names in their current order.
func columnOrder(keys []string, names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	order := make([]string, 0, len(names))
	placed := make(map[string]bool, len(names))
	for _, key := range keys {
		if present[key] && !placed[key] {
			order = append(order, key)
			placed[key] = true
		}
	}
	for _, name := range names {
		if !placed[name] {
			order = append(order, name)
		}
	}
	return order
}
