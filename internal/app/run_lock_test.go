//go:build unix

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/tsbridge/internal/dirlock"
	"github.com/specialistvlad/tsbridge/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestRun_LockHeldElsewhereFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root, cfg := newWorkspace(t)
	cfg.Lock = true
	require.NoError(t, os.MkdirAll(filepath.Join(root, testOutputDir), 0755))
	held, err := dirlock.Acquire(filepath.Join(root, testOutputLocation) + lockSuffix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Release() })

	fake := &testutil.FakeCompiler{}
	run := setupApp(t, cfg, withFake(fake))

	// --- Act ---
	err = run.app.Run(context.Background())

	// --- Assert ---
	var locked *dirlock.ErrLocked
	require.ErrorAs(t, err, &locked)
	require.Empty(t, fake.Calls())
}

func TestRun_LockIsReleased(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root, cfg := newWorkspace(t)
	cfg.Lock = true
	run := setupApp(t, cfg, withFake(&testutil.FakeCompiler{}))

	// --- Act ---
	err := run.app.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	again, err := dirlock.Acquire(filepath.Join(root, testOutputLocation) + lockSuffix)
	require.NoError(t, err, "lock must be free after the run")
	require.NoError(t, again.Release())
}
