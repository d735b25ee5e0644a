package persistance

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-gota/gota/dataframe"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// WriteCSV writes df, header included, to path. The table goes to a
// temporary file in the same directory first and is then renamed over
// path, so path holds either the previous content or the complete table.
func WriteCSV(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.Wrap(df.Err, "write csv")
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temporary file in %s", dir)
	}
	tmp := f.Name()

	if err := df.WriteCSV(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "sync %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "rename %s to %s", tmp, path)
	}

	// best-effort directory fsync
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	log.Infof("Saved %d rows to %s", df.Nrow(), path)
	return nil
}
