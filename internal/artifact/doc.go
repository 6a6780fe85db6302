// Package artifact implements the snapshot and reconcile protocol that keeps
// a timestamp-driven build graph in step with a content-hashing compiler.
//
// Capture records the modification time and full content of every generated
// file the compiler may rewrite. After the compiler has run, Reconcile puts
// the old modification time back on every file whose content is byte-for-byte
// what it was before, so dependents see no change. Files that changed or
// disappeared keep whatever state the compiler left, which is the genuine
// change signal.
//
// Capture and Reconcile must bracket a single compiler invocation and must
// not run concurrently with another invocation against the same output
// directory.
package artifact
