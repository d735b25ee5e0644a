package loader

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// LoadRestaurants runs the schema and seed script against the SQLite
// database at dbPath and reads every row of table back. The connection is
// closed before returning.
//
// The script is executed on every call, so a script that only inserts
// leaves duplicate rows behind on an existing database.
func LoadRestaurants(dbPath string, scriptPath string, table string) (dataframe.DataFrame, error) {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read %s", scriptPath)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open database %s", dbPath)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open database %s", dbPath)
	}
	defer sqlDB.Close()

	if err := db.Exec(string(script)).Error; err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "execute %s", scriptPath)
	}
	log.Debugf("Executed %s against %s", scriptPath, dbPath)

	rows, err := db.Table(table).Rows()
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "query table %s", table)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read table %s", table)
	}

	source := fmt.Sprintf("%s:%s", dbPath, table)
	df, err := recordsToDataFrame(records, source)
	if err != nil {
		return df, err
	}
	log.Infof("Loaded %d rows from %s", df.Nrow(), source)
	return df, nil
}

// scanRecords returns the header followed by one text record per row.
func scanRecords(rows *sql.Rows) ([][]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := [][]string{columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = sqlText(v)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func sqlText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NaN"
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func recordsToDataFrame(records [][]string, source string) (dataframe.DataFrame, error) {
	if len(records) > 1 {
		return loadTyped(func(options ...dataframe.LoadOption) dataframe.DataFrame {
			return dataframe.LoadRecords(records, options...)
		}, source, restaurantTypes, restaurantColumns)
	}

	// header only: build empty typed columns
	columns := make([]series.Series, 0, len(records[0]))
	for _, name := range records[0] {
		t, ok := restaurantTypes[name]
		if !ok {
			t = series.String
		}
		columns = append(columns, series.New([]string{}, t, name))
	}
	return checkColumns(dataframe.New(columns...), source, restaurantColumns)
}
