package app

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/specialistvlad/tsbridge/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		level     string
		format    string
		wantDebug bool
		wantJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", wantDebug: true},
		{name: "info json", level: "info", format: "json", wantJSON: true},
		{name: "unknown level falls back to info", level: "chatty", format: "text"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			buf := &testutil.SafeBuffer{}
			logger := newLogger(tc.level, tc.format, buf, "inv-1")

			// --- Act ---
			logger.Debug("debug line")
			logger.Info("info line")

			// --- Assert ---
			out := buf.String()
			require.Equal(t, tc.wantDebug, strings.Contains(out, "debug line"))
			require.Contains(t, out, "info line")
			if tc.wantJSON {
				var record map[string]any
				require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &record))
				require.Equal(t, "inv-1", record["invocation_id"])
			} else {
				require.Contains(t, out, "invocation_id=inv-1")
			}
		})
	}
}
