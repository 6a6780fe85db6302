// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle of one library target:
// synthesize the compiler configuration, snapshot the previous artifacts, run
// the compiler, restore timestamps of unchanged artifacts and report the
// result. It is decoupled from any specific entrypoint like a CLI.
package app
