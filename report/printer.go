package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/go-gota/gota/dataframe"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	valueColor = color.New(color.FgGreen)
)

// Print writes every result: a numbered title, the value and, for tabular
// results, the table.
func Print(w io.Writer, results []Result) error {
	for _, result := range results {
		if _, err := titleColor.Fprintf(w, "%d. %s: ", result.QueryId, result.Title); err != nil {
			return errors.Wrap(err, "print report")
		}
		if _, err := valueColor.Fprintln(w, formatValue(result.Value)); err != nil {
			return errors.Wrap(err, "print report")
		}
		if result.IsTable() {
			renderTable(w, result.Columns, rowsToStringRows(result.Rows))
			fmt.Fprintln(w)
		}
	}
	return nil
}

// PrintPreview writes the column names and first n rows of df.
func PrintPreview(w io.Writer, title string, df dataframe.DataFrame, n int) error {
	if df.Err != nil {
		return errors.Wrapf(df.Err, "preview %s", title)
	}
	if n > df.Nrow() {
		n = df.Nrow()
	}
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}

	records := [][]string{df.Names()}
	if n > 0 {
		head := df.Subset(indexes)
		if head.Err != nil {
			return errors.Wrapf(head.Err, "preview %s", title)
		}
		records = head.Records()
	}

	if _, err := titleColor.Fprintf(w, "%s (%d of %d rows)\n", title, n, df.Nrow()); err != nil {
		return errors.Wrap(err, "print preview")
	}
	renderTable(w, records[0], records[1:])
	fmt.Fprintln(w)
	return nil
}

// PrintValidation writes the row counts before and after the joins and the
// columns of the restaurants table.
func PrintValidation(w io.Writer, ordersRows int, finalRows int, restaurantColumns []string) error {
	if _, err := titleColor.Fprintln(w, "Validation"); err != nil {
		return errors.Wrap(err, "print validation")
	}
	fmt.Fprintf(w, "Orders rows: %d\n", ordersRows)
	fmt.Fprintf(w, "Final rows: %d\n", finalRows)
	fmt.Fprintf(w, "Restaurant columns: %v\n\n", restaurantColumns)
	return nil
}

func renderTable(w io.Writer, columns []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "_Columns: %v_\n\n_No rows_\n", columns)
		return
	}

	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(columns)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

func rowsToStringRows(rows [][]interface{}) [][]string {
	stringRows := make([][]string, len(rows))
	for i, row := range rows {
		stringRows[i] = make([]string, len(row))
		for j, col := range row {
			stringRows[i][j] = formatValue(col)
		}
	}
	return stringRows
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(roundHalfEven(v, 2), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
