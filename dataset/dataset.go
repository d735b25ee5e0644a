package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is a row oriented copy of a dataframe. Cells hold float64, int,
// string, bool or nil for null values.
type Dataset struct {
	ColumnNames []string        `json:"column_names,omitempty"`
	Rows        [][]interface{} `json:"rows,omitempty"`
}

func New(columnNames []string, rows [][]interface{}) *Dataset {
	if rows == nil {
		rows = make([][]interface{}, 0)
	}
	return &Dataset{
		ColumnNames: columnNames,
		Rows:        rows,
	}
}

// FromDataFrame copies df into a Dataset, keeping the series type of each
// column and turning NA elements into nil.
func FromDataFrame(df dataframe.DataFrame) (*Dataset, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "invalid dataframe")
	}

	names := df.Names()
	rows := make([][]interface{}, df.Nrow())
	for i := range rows {
		rows[i] = make([]interface{}, len(names))
	}

	for j, name := range names {
		col := df.Col(name)
		for i := 0; i < col.Len(); i++ {
			v, err := cellValue(col, i)
			if err != nil {
				return nil, errors.Wrapf(err, "column %s row %d", name, i)
			}
			rows[i][j] = v
		}
	}

	return New(names, rows), nil
}

func cellValue(col series.Series, i int) (interface{}, error) {
	elem := col.Elem(i)
	if elem.IsNA() {
		return nil, nil
	}
	switch col.Type() {
	case series.Float:
		return elem.Float(), nil
	case series.Int:
		return elem.Int()
	case series.Bool:
		return elem.Bool()
	default:
		return elem.String(), nil
	}
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the column or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.ColumnNames {
		if col == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) Column(name string) ([]interface{}, error) {
	idx := d.ColumnIndex(name)
	if idx == -1 {
		return nil, errors.Newf("%s column not found", name)
	}
	values := make([]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Where keeps the rows for which keep returns true. Rows are shared with
// the receiver, not copied.
func (d *Dataset) Where(keep func(row []interface{}) (bool, error)) (*Dataset, error) {
	kept := make([][]interface{}, 0)
	for i, row := range d.Rows {
		ok, err := keep(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		if ok {
			kept = append(kept, row)
		}
	}
	return New(d.ColumnNames, kept), nil
}

// WithColumn returns a copy with a column computed from every row. An
// existing column with the same name is replaced.
func (d *Dataset) WithColumn(name string, compute func(row []interface{}) (interface{}, error)) (*Dataset, error) {
	idx := d.ColumnIndex(name)
	columns := d.ColumnNames
	if idx == -1 {
		columns = append(append(make([]string, 0, len(d.ColumnNames)+1), d.ColumnNames...), name)
	}

	rows := make([][]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		v, err := compute(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		newRow := make([]interface{}, len(columns))
		copy(newRow, row)
		if idx == -1 {
			newRow[len(columns)-1] = v
		} else {
			newRow[idx] = v
		}
		rows[i] = newRow
	}
	return New(columns, rows), nil
}

// ToFloat converts a numeric cell, or a string holding a number, to float64.
func ToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString renders a non-null cell as text.
func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
