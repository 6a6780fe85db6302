package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/tsbridge/internal/ctxlog"
)

// ReconcileReport lists what Reconcile decided for each snapshotted file.
// Names are in lexical order.
type ReconcileReport struct {
	// Restored files had identical content; their old time was put back.
	Restored []string
	// Changed files have new content and keep the compiler's time.
	Changed []string
	// Removed files no longer exist.
	Removed []string
	// Errors are files that could not be compared or restored. They keep
	// whatever time the compiler left, which at worst reruns dependents.
	Errors []error
}

// Reconcile restores the snapshotted modification time on every generated
// file whose content is unchanged since Capture.
func Reconcile(ctx context.Context, snap *Snapshot, outputDir string) ReconcileReport {
	logger := ctxlog.FromContext(ctx)
	var report ReconcileReport

	for _, name := range snap.Names() {
		entry, _ := snap.Entry(name)
		path := filepath.Join(outputDir, name)

		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.Removed = append(report.Removed, name)
				continue
			}
			report.Errors = append(report.Errors, fmt.Errorf("re-reading %s: %w", name, err))
			logger.Warn("Could not re-read generated file.", "file", name, "error", err)
			continue
		}

		if !bytes.Equal(content, entry.Content) {
			report.Changed = append(report.Changed, name)
			continue
		}

		if err := os.Chtimes(path, entry.ModTime, entry.ModTime); err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("restoring time of %s: %w", name, err))
			logger.Warn("Could not restore modification time.", "file", name, "error", err)
			continue
		}
		report.Restored = append(report.Restored, name)
	}

	logger.Info("Reconciled generated files.",
		"restored", len(report.Restored),
		"changed", len(report.Changed),
		"removed", len(report.Removed),
		"errors", len(report.Errors),
	)
	if len(report.Changed) > 0 {
		logger.Debug("Generated files changed content.", "files", report.Changed)
	}
	return report
}
