package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/tsbridge/internal/app"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParse_FullTarget(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{
		"--sources", "front_end/common/a.ts",
		"-s", "front_end/common/b.ts",
		"front_end/common/c.ts",
		"--deps=../sdk/tsconfig.json",
		"-d", "front_end",
		"-b", "gen/front_end/common/tsconfig.json",
		"--module", "commonjs",
		"--test-only",
		"--is_web_worker",
		"--use-rbe",
		"--rewrapper-binary", "rewrapper",
		"--rewrapper-cfg", "rewrapper.cfg",
		"--rewrapper-exec-root", "../..",
		"--global-definitions", "front_end/legacy/defs.d.ts",
		"--lock",
		"--log-format", "JSON",
	}
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, cfg)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, wd, cfg.WorkDir)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.UseRemote)
	require.True(t, cfg.Lock)
	require.Equal(t, config.Remote{Binary: "rewrapper", Cfg: "rewrapper.cfg", ExecRoot: "../.."}, cfg.Remote)
	require.Equal(t, []string{"front_end/legacy/defs.d.ts"}, cfg.Toolchain.GlobalDefinitions)

	var target config.Target
	cfg.Target.Apply(&target)
	want := config.Target{
		Sources:                []string{"front_end/common/a.ts", "front_end/common/b.ts", "front_end/common/c.ts"},
		Deps:                   []string{"../sdk/tsconfig.json"},
		FrontEndDirectory:      "front_end",
		TSConfigOutputLocation: "gen/front_end/common/tsconfig.json",
		Module:                 "commonjs",
		TestOnly:               true,
		WebWorker:              true,
	}
	if diff := cmp.Diff(want, target); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DepsPresence(t *testing.T) {
	t.Parallel()

	base := []string{"-d", "front_end", "-b", "gen/tsconfig.json"}

	testCases := []struct {
		name     string
		extra    []string
		wantNil  bool
		wantDeps []string
	}{
		{name: "flag absent", extra: nil, wantNil: true},
		{name: "flag given empty", extra: []string{"--deps="}, wantDeps: []string{}},
		{name: "flag given twice", extra: []string{"--deps=a", "--deps=b"}, wantDeps: []string{"a", "b"}},
		{name: "bare flag", extra: []string{"--deps"}, wantDeps: []string{}},
		{name: "bare flag before another flag", extra: []string{"--deps", "--test-only", "a.ts"}, wantDeps: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, _, err := Parse(append(append([]string{}, base...), tc.extra...), &bytes.Buffer{})

			// --- Assert ---
			require.NoError(t, err)
			if tc.wantNil {
				require.Nil(t, cfg.Target.Deps)
				return
			}
			require.NotNil(t, cfg.Target.Deps)
			require.Equal(t, tc.wantDeps, cfg.Target.Deps)
		})
	}
}

func TestParse_BareDepsKeepsFollowingArguments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "followed by a flag and a source", args: []string{"-d", "f", "-b", "g", "--deps", "--test-only", "a.ts"}},
		{name: "trailing", args: []string{"-d", "f", "-b", "g", "--test-only", "a.ts", "--deps"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, _, err := Parse(tc.args, &bytes.Buffer{})

			// --- Assert ---
			require.NoError(t, err)
			require.Equal(t, []string{}, cfg.Target.Deps)
			require.NotNil(t, cfg.Target.TestOnly)
			require.True(t, *cfg.Target.TestOnly)
			require.Equal(t, []string{"a.ts"}, cfg.Target.Sources)
		})
	}
}

func TestParse_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Parallel()

	// --- Act ---
	cfg, _, err := Parse([]string{"--target-file", "BUILD.hcl", "--target", "common"}, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"BUILD.hcl"}, cfg.Manifests)
	require.Equal(t, "common", cfg.TargetName)
	require.Equal(t, app.TargetFlags{}, cfg.Target)
}

func TestParse_HelpAndNoArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "help flag", args: []string{"-h"}},
		{name: "long help flag", args: []string{"--help"}},
		{name: "no arguments", args: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			require.NoError(t, err)
			require.True(t, shouldExit)
			require.Nil(t, cfg)
			require.Contains(t, out.String(), "Usage:")
			require.Contains(t, out.String(), "--tsconfig_output_location")
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, wantMsg: "unknown flag"},
		{name: "missing output location", args: []string{"-d", "front_end"}, wantMsg: "tsconfig_output_location"},
		{name: "missing front-end directory", args: []string{"-b", "gen/tsconfig.json"}, wantMsg: "front_end_directory"},
		{name: "invalid log format", args: []string{"-d", "f", "-b", "g", "--log-format", "xml"}, wantMsg: "log-format"},
		{name: "invalid log level", args: []string{"-d", "f", "-b", "g", "--log-level", "verbose"}, wantMsg: "log-level"},
		{name: "target without file", args: []string{"-d", "f", "-b", "g", "--target", "x"}, wantMsg: "requires a target file"},
		{name: "all without file", args: []string{"--all"}, wantMsg: "requires a target file"},
		{name: "all with target", args: []string{"--all", "--target-file", "BUILD.hcl", "--target", "x"}, wantMsg: "cannot be combined"},
		{name: "all with sources", args: []string{"--all", "--target-file", "BUILD.hcl", "a.ts"}, wantMsg: "cannot be overridden"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			// --- Assert ---
			require.Nil(t, cfg)
			require.False(t, shouldExit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, app.ExitUsage, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
