package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/tsbridge/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkDir is the directory relative paths are resolved against.
	WorkDir string
	// Root is the repository root. Empty falls back to TSBRIDGE_ROOT and then
	// to WorkDir.
	Root string
	// EnvFile is an optional dotenv file with TSBRIDGE_* settings. Empty
	// means DefaultEnvFile when it exists.
	EnvFile string

	// Manifests are HCL files or directories declaring targets.
	Manifests []string
	// TargetName selects the manifest target to build.
	TargetName string
	// AllTargets builds every manifest target in reference order.
	AllTargets bool
	// Target holds target settings given on the command line. They override
	// the manifest.
	Target TargetFlags

	Toolchain ToolchainFlags

	// UseRemote requests remote execution. A manifest target with a remote
	// block requests it too.
	UseRemote bool
	// Remote settings override those of the manifest's remote block.
	Remote config.Remote

	// Lock guards the output directory with an advisory file lock.
	Lock bool

	LogFormat string
	LogLevel  string
}

// TargetFlags are target settings from the command line. Nil fields were not
// given and leave the manifest value alone.
type TargetFlags struct {
	Sources []string
	// Deps is non-nil when the deps flag was given, even without values.
	Deps []string

	FrontEndDirectory      *string
	TSConfigOutputLocation *string
	Module                 *string

	TestOnly       *bool
	NoEmit         *bool
	VerifyLibCheck *bool
	WebWorker      *bool
}

// Apply overrides t with every given flag.
func (f TargetFlags) Apply(t *config.Target) {
	if f.Sources != nil {
		t.Sources = append([]string(nil), f.Sources...)
	}
	if f.Deps != nil {
		t.Deps = append([]string{}, f.Deps...)
	}
	applyString(&t.FrontEndDirectory, f.FrontEndDirectory)
	applyString(&t.TSConfigOutputLocation, f.TSConfigOutputLocation)
	applyString(&t.Module, f.Module)
	applyBool(&t.TestOnly, f.TestOnly)
	applyBool(&t.NoEmit, f.NoEmit)
	applyBool(&t.VerifyLibCheck, f.VerifyLibCheck)
	applyBool(&t.WebWorker, f.WebWorker)
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ToolchainFlags locate the compiler toolchain. Empty fields are resolved
// from the environment, the manifest and finally the defaults.
type ToolchainFlags struct {
	Node              string
	TSC               string
	BaseTSConfig      string
	GlobalDefinitions []string
}

var (
	validLogFormats = []string{"text", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// NewConfig validates cfg and returns a copy with normalized values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("WorkDir is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.AllTargets {
		if len(cfg.Manifests) == 0 {
			return nil, errors.New("building all targets requires a target file")
		}
		if cfg.TargetName != "" {
			return nil, errors.New("a target name cannot be combined with building all targets")
		}
		t := cfg.Target
		if t.Sources != nil || t.Deps != nil || t.FrontEndDirectory != nil || t.TSConfigOutputLocation != nil {
			return nil, errors.New("sources, deps, front_end_directory and tsconfig_output_location cannot be overridden for all targets")
		}
	}
	if cfg.TargetName != "" && len(cfg.Manifests) == 0 {
		return nil, fmt.Errorf("target %q requires a target file", cfg.TargetName)
	}
	if len(cfg.Manifests) == 0 {
		// Without a manifest the command line is the whole target.
		if isBlank(cfg.Target.TSConfigOutputLocation) {
			return nil, errors.New("tsconfig_output_location is required")
		}
		if isBlank(cfg.Target.FrontEndDirectory) {
			return nil, errors.New("front_end_directory is required")
		}
	}
	return &cfg, nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
