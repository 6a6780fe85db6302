// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for manifest discovery, parsing, expression
// evaluation and translation of the decoded blocks into the format-agnostic
// config.Model.
package hcl
