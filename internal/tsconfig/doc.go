// Package tsconfig synthesizes the compiler configuration document for one
// library target and persists it only when its serialized form changes.
//
// The build graph watches the configuration file itself, so an unchanged
// document must never move the file's modification time. Serialization is
// therefore a pure function of the document tree: object keys are sorted,
// template numbers are kept verbatim and nothing time-dependent is embedded.
package tsconfig
