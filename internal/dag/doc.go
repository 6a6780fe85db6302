// Package dag orders library targets by their project references. Targets
// form a directed acyclic graph where an edge from A to B means B references
// the output of A, so A must be built first.
package dag
