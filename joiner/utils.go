package joiner

import (
	"math"
	"strconv"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// nullKey is how gota spells a null element.
const nullKey = "NaN"

func findColumnIndex(columnName string, columns []string) int {
	for i, col := range columns {
		if col == columnName {
			return i
		}
	}
	return -1
}

// canonicalKey gives every spelling of the same key one text form, so
// that "10", "10.0" and a JSON number 10 match each other. Non numeric
// keys compare as trimmed text.
func canonicalKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed == nullKey {
		return nullKey
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil &&
		!math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}

	return trimmed
}
