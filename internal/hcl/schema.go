package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Toolchains []*Toolchain `hcl:"toolchain,block"`
	Libraries  []*Library   `hcl:"ts_library,block"`
	Remain     hcl.Body     `hcl:",remain"`
}

// Toolchain represents a `toolchain` block.
type Toolchain struct {
	Node              string   `hcl:"node,optional"`
	TSC               string   `hcl:"tsc,optional"`
	TypeScriptDir     string   `hcl:"typescript_directory,optional"`
	BaseTSConfig      string   `hcl:"base_tsconfig,optional"`
	TypesDirectory    string   `hcl:"types_directory,optional"`
	GlobalDefinitions []string `hcl:"global_definitions,optional"`
}

// Library represents a `ts_library "<name>"` block.
type Library struct {
	Name    string   `hcl:"name,label"`
	Sources []string `hcl:"sources,optional"`

	// Deps is kept as an expression so that an explicit empty list can be
	// told apart from an omitted attribute.
	Deps hcl.Expression `hcl:"deps,optional"`

	FrontEndDirectory      string  `hcl:"front_end_directory"`
	TSConfigOutputLocation string  `hcl:"tsconfig_output_location"`
	Module                 string  `hcl:"module,optional"`
	TestOnly               bool    `hcl:"test_only,optional"`
	NoEmit                 bool    `hcl:"no_emit,optional"`
	VerifyLibCheck         bool    `hcl:"verify_lib_check,optional"`
	WebWorker              bool    `hcl:"is_web_worker,optional"`
	Remote                 *Remote `hcl:"remote,block"`
}

// Remote represents the `remote` block of a library.
type Remote struct {
	Binary   string `hcl:"binary"`
	Cfg      string `hcl:"cfg"`
	ExecRoot string `hcl:"exec_root"`
}
