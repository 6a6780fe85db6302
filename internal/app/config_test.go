package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/specialistvlad/tsbridge/internal/report"
	"github.com/specialistvlad/tsbridge/internal/tsconfig"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	valid := Config{
		WorkDir: "/work",
		Target: TargetFlags{
			FrontEndDirectory:      ptr("front_end"),
			TSConfigOutputLocation: ptr("gen/tsconfig.json"),
		},
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid with defaults", mutate: func(c *Config) {}},
		{name: "missing work dir", mutate: func(c *Config) { c.WorkDir = "" }, wantErr: "WorkDir"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log-format"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log-level"},
		{name: "upper case level accepted", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "missing output location", mutate: func(c *Config) { c.Target.TSConfigOutputLocation = nil }, wantErr: "tsconfig_output_location"},
		{name: "blank front-end directory", mutate: func(c *Config) { c.Target.FrontEndDirectory = ptr(" ") }, wantErr: "front_end_directory"},
		{name: "target without manifest", mutate: func(c *Config) { c.TargetName = "common" }, wantErr: "requires a target file"},
		{
			name: "all targets",
			mutate: func(c *Config) {
				c.Target = TargetFlags{Module: ptr("esnext")}
				c.Manifests = []string{"BUILD.hcl"}
				c.AllTargets = true
			},
		},
		{
			name: "all targets with output override",
			mutate: func(c *Config) {
				c.Manifests = []string{"BUILD.hcl"}
				c.AllTargets = true
			},
			wantErr: "cannot be overridden",
		},
		{
			name: "manifest supplies target fields",
			mutate: func(c *Config) {
				c.Target = TargetFlags{}
				c.Manifests = []string{"BUILD.hcl"}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			cfg := valid
			tc.mutate(&cfg)

			// --- Act ---
			got, err := NewConfig(cfg)

			// --- Assert ---
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Contains(t, validLogFormats, got.LogFormat)
			require.Contains(t, validLogLevels, got.LogLevel)
		})
	}
}

func TestTargetFlags_Apply(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	target := config.Target{
		Name:                   "common",
		Sources:                []string{"a.ts"},
		FrontEndDirectory:      "front_end",
		TSConfigOutputLocation: "gen/tsconfig.json",
		Module:                 "commonjs",
		TestOnly:               true,
	}
	flags := TargetFlags{
		Deps:     []string{},
		Module:   ptr("esnext"),
		TestOnly: ptr(false),
		NoEmit:   ptr(true),
	}

	// --- Act ---
	flags.Apply(&target)

	// --- Assert ---
	want := config.Target{
		Name:                   "common",
		Sources:                []string{"a.ts"},
		Deps:                   []string{},
		FrontEndDirectory:      "front_end",
		TSConfigOutputLocation: "gen/tsconfig.json",
		Module:                 "esnext",
		NoEmit:                 true,
	}
	if diff := cmp.Diff(want, target); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, target.Deps, "given but empty deps clear references")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: report.ExitOK},
		{name: "usage", err: &ConfigError{Err: errors.New("bad")}, want: ExitUsage},
		{name: "compile failure", err: &report.CompileError{Outcome: report.NewOutcome(2, "x")}, want: report.ExitFailed},
		{name: "wrapped write failure", err: errors.Join(&tsconfig.ConfigWriteError{Path: "p", Op: "write", Err: errors.New("disk full")}), want: report.ExitFailed},
		{name: "anything else", err: errors.New("boom"), want: report.ExitFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}
