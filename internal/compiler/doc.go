// Package compiler is the boundary to the external TypeScript compiler.
//
// A Compiler runs one compilation for a generated configuration file and
// reports the process exit code together with its combined output. Two
// implementations exist: Local runs node and tsc as a child process, Remote
// wraps the same command line in a remote execution client. Select chooses
// between them; nothing downstream depends on which one ran.
//
// The compiler is known to print some diagnostics on stdout, so Output is
// always stdout followed by stderr.
package compiler
