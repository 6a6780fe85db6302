package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	FromContext(ctx).Info("hello")

	// --- Assert ---
	require.Contains(t, buf.String(), "msg=hello")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	// --- Act ---
	ctx = With(ctx, "phase", "snapshot")
	FromContext(ctx).Info("captured")

	// --- Assert ---
	require.Contains(t, buf.String(), "phase=snapshot")
}
