package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/specialistvlad/tsbridge/internal/ctxlog"
)

// Entry is the state of one generated file immediately before compilation.
type Entry struct {
	ModTime time.Time
	Content []byte
}

// Snapshot maps generated file names, relative to the output directory, to
// their pre-compilation state. A Snapshot lives for one invocation only.
type Snapshot struct {
	entries map[string]Entry
	skipped []*SnapshotReadError
}

// Len returns the number of captured files.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Names returns the captured file names in lexical order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry returns the captured state of name.
func (s *Snapshot) Entry(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[name]
	return e, ok
}

// Skipped returns the files that existed but could not be read.
func (s *Snapshot) Skipped() []*SnapshotReadError {
	if s == nil {
		return nil
	}
	return s.skipped
}

// SnapshotReadError describes a generated file left out of a snapshot
// because it could not be read. It never aborts a run.
type SnapshotReadError struct {
	Name string
	Err  error
}

func (e *SnapshotReadError) Error() string {
	return fmt.Sprintf("snapshot of %s skipped: %v", e.Name, e.Err)
}

func (e *SnapshotReadError) Unwrap() error { return e.Err }

// Capture records the modification time and content of every generated file
// that currently exists for sources in outputDir. It only reads.
func Capture(ctx context.Context, sources []string, outputDir string) *Snapshot {
	logger := ctxlog.FromContext(ctx)
	snap := &Snapshot{entries: make(map[string]Entry)}

	for _, name := range GeneratedNames(sources) {
		path := filepath.Join(outputDir, name)
		entry, err := readEntry(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			readErr := &SnapshotReadError{Name: name, Err: err}
			snap.skipped = append(snap.skipped, readErr)
			logger.Warn("Generated file excluded from snapshot.", "file", name, "error", err)
			continue
		}
		snap.entries[name] = entry
	}

	logger.Debug("Captured generated file snapshot.", "output_dir", outputDir, "files", len(snap.entries), "skipped", len(snap.skipped))
	return snap
}

// readEntry reads content and modification time from one open handle so the
// pair describes the same file.
func readEntry(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Entry{}, err
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("%s is a directory", path)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ModTime: info.ModTime(), Content: content}, nil
}
