// Package export writes snapshots and snapshot logs as indented JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

const indent = "  "

// WriteSnapshot encodes s to w with two-space indentation.
func WriteSnapshot(w io.Writer, s model.Snapshot) error {
	return encode(w, s)
}

// WriteLog encodes log as a JSON array. An empty log is ErrNoData.
func WriteLog(w io.Writer, log []model.Snapshot) error {
	if len(log) == 0 {
		return apperrors.ErrNoData
	}
	return encode(w, log)
}

// WriteLine encodes v compactly followed by a newline, for NDJSON streams.
func WriteLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// SnapshotFilename is the default file name for a manual snapshot taken at t.
func SnapshotFilename(t time.Time) string {
	return fmt.Sprintf("snapshot_%d.json", t.Unix())
}

// SaveSnapshot writes s into dir under SnapshotFilename and returns the path.
func SaveSnapshot(dir string, s model.Snapshot, at time.Time) (string, error) {
	path := filepath.Join(dir, SnapshotFilename(at))
	if err := writeFile(path, func(w io.Writer) error { return WriteSnapshot(w, s) }); err != nil {
		return "", err
	}
	return path, nil
}

// SaveLog writes log to path.
func SaveLog(path string, log []model.Snapshot) error {
	if len(log) == 0 {
		return apperrors.ErrNoData
	}
	return writeFile(path, func(w io.Writer) error { return WriteLog(w, log) })
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = apperrors.WrapError(cerr, "close %s", path)
		}
	}()
	return apperrors.WrapError(write(f), "write %s", path)
}
