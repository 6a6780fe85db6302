package tsconfig

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/tsbridge/internal/ctxlog"
)

// WriteOutcome tells what PersistIfChanged did to the file on disk.
type WriteOutcome int

const (
	// Unchanged means the file already held the serialized document.
	Unchanged WriteOutcome = iota
	// Created means the file did not exist and was written.
	Created
	// Updated means the file existed with different content and was rewritten.
	Updated
)

func (o WriteOutcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Wrote reports whether the file was written.
func (o WriteOutcome) Wrote() bool {
	return o != Unchanged
}

// PersistIfChanged writes doc to path unless the file already holds exactly
// the serialized document. The write goes through a temporary file in the
// same directory so readers never observe a partial document.
func PersistIfChanged(ctx context.Context, path string, doc *Document) (WriteOutcome, error) {
	logger := ctxlog.FromContext(ctx)

	contents, err := doc.Marshal()
	if err != nil {
		return Unchanged, &ConfigWriteError{Path: path, Op: "serialize", Err: err}
	}

	outcome := Created
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(old, contents) {
			logger.Debug("Generated tsconfig is up to date.", "path", path)
			return Unchanged, nil
		}
		outcome = Updated
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Unchanged, &ConfigWriteError{Path: path, Op: "read", Err: err}
	}

	if err := writeAtomic(path, contents); err != nil {
		return Unchanged, &ConfigWriteError{Path: path, Op: "write", Err: err}
	}
	logger.Info("Generated tsconfig written.", "path", path, "outcome", outcome.String(), "bytes", len(contents))
	return outcome, nil
}

func writeAtomic(path string, contents []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
