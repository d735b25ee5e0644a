package joiner

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
)

// DropDuplicates keeps the first row seen for every value of key and drops
// the later ones. Null keys count as one value.
func DropDuplicates(df dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.Wrap(df.Err, "drop duplicates")
	}
	if findColumnIndex(key, df.Names()) == -1 {
		return df, errors.Newf("drop duplicates: key %s not found in columns %v", key, df.Names())
	}
	if df.Nrow() == 0 {
		return df, nil
	}

	seen := make(map[string]struct{}, df.Nrow())
	keep := make([]int, 0, df.Nrow())
	for i, value := range df.Col(key).Records() {
		k := canonicalKey(value)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}

	if len(keep) == df.Nrow() {
		return df, nil
	}
	log.Infof("Dropped %d duplicate rows by %s", df.Nrow()-len(keep), key)

	deduped := df.Subset(keep)
	if deduped.Err != nil {
		return df, errors.Wrap(deduped.Err, "drop duplicates")
	}
	return deduped, nil
}
