package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/tsbridge/internal/compiler"
	"github.com/specialistvlad/tsbridge/internal/hcl"
	"github.com/specialistvlad/tsbridge/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testOutputLocation = "gen/front_end/common/tsconfig.json"
	testOutputDir      = "gen/front_end/common"
	testBaseTemplate   = `{"compilerOptions": {"strict": true}}`
)

var (
	oldTime = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	newTime = time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

// newWorkspace creates a repository root holding the base template and one
// source file, and returns a configuration building it.
func newWorkspace(t *testing.T) (string, Config) {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"tsconfig.base.json":    testBaseTemplate,
		"front_end/common/a.ts": "export const a = 1;\n",
	})
	return root, Config{
		WorkDir: root,
		Target: TargetFlags{
			Sources:                []string{"front_end/common/a.ts"},
			FrontEndDirectory:      ptr("front_end"),
			TSConfigOutputLocation: ptr(testOutputLocation),
		},
		LogLevel:  "debug",
		LogFormat: "text",
	}
}

type testRun struct {
	app  *App
	out  *testutil.SafeBuffer
	logs *testutil.SafeBuffer
}

// setupApp builds an App with an empty environment.
func setupApp(t *testing.T, cfg Config, opts ...Option) testRun {
	t.Helper()
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	opts = append([]Option{WithGetenv(func(string) string { return "" })}, opts...)
	a := NewApp(out, logs, validated, hcl.NewLoader(), opts...)

	t.Cleanup(func() {
		if os.Getenv("TSBRIDGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testRun{app: a, out: out, logs: logs}
}

func withFake(fake *testutil.FakeCompiler) Option {
	return WithCompilers(fake, nil)
}

func outputPath(root, name string) string {
	return filepath.Join(root, testOutputDir, name)
}

var _ compiler.Compiler = (*testutil.FakeCompiler)(nil)
