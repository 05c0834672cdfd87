package file

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPermissionOctal grants read and write access to the running user only
const DefaultPermissionOctal os.FileMode = 0o600

const dirPermissionOctal os.FileMode = 0o770

var (
	errNoRecords         = errors.New("no records in CSV")
	errRecordLenMismatch = errors.New("record length does not match table row length")
	errEmptyPath         = errors.New("empty file path")
)

// Write writes data to file, creating any missing parent directories
func Write(file string, data []byte) error {
	if err := ensureDir(file); err != nil {
		return err
	}
	return os.WriteFile(file, data, DefaultPermissionOctal)
}

// Writer returns a truncated file opened for writing, creating any missing
// parent directories. The caller closes it.
func Writer(file string) (*os.File, error) {
	if err := ensureDir(file); err != nil {
		return nil, err
	}
	return os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultPermissionOctal)
}

// Exists returns whether or not a file or path exists
func Exists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, os.ErrNotExist)
}

// WriteAsCSV takes a table of records and writes it as CSV. Every record must
// match the width of the first.
func WriteAsCSV(filename string, records [][]string) error {
	if len(records) == 0 {
		return errNoRecords
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i := range records {
		if len(records[0]) != len(records[i]) {
			return fmt.Errorf("%w: row %d has %d fields, expected %d", errRecordLenMismatch, i, len(records[i]), len(records[0]))
		}
		if err := w.Write(records[i]); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return Write(filename, buf.Bytes())
}

func ensureDir(file string) error {
	if file == "" {
		return errEmptyPath
	}
	basePath := filepath.Dir(file)
	if Exists(basePath) {
		return nil
	}
	return os.MkdirAll(basePath, dirPermissionOctal)
}
