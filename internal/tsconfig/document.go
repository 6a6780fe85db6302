package tsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const compilerOptionsKey = "compilerOptions"

// Document is a JSON object tree. Values are the types produced by
// encoding/json with UseNumber: map[string]any, []any, string, json.Number,
// bool and nil.
type Document struct {
	root map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: make(map[string]any)}
}

// ParseDocument decodes a JSON object. Numbers are kept as json.Number so
// that re-serialization reproduces them exactly.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level object")
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be an object, got %T", v)
	}
	return &Document{root: root}, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{root: cloneValue(d.root).(map[string]any)}
}

// Get returns the top-level value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.root[key]
	return v, ok
}

// Set stores a top-level value.
func (d *Document) Set(key string, v any) {
	d.root[key] = v
}

// CompilerOption returns the value stored under compilerOptions.key.
func (d *Document) CompilerOption(key string) (any, bool) {
	opts, ok := d.root[compilerOptionsKey].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := opts[key]
	return v, ok
}

// compilerOptions returns the compilerOptions object, creating it when the
// template does not carry one.
func (d *Document) compilerOptions() (map[string]any, error) {
	raw, ok := d.root[compilerOptionsKey]
	if !ok || raw == nil {
		opts := make(map[string]any)
		d.root[compilerOptionsKey] = opts
		return opts, nil
	}
	opts, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object, got %T", compilerOptionsKey, raw)
	}
	return opts, nil
}

// Marshal serializes the document. Identical trees always produce identical
// bytes.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// stringList converts a string slice into a JSON array value. A nil or empty
// input yields an empty array, never null.
func stringList(items []string) []any {
	out := make([]any, 0, len(items))
	for _, s := range items {
		out = append(out, s)
	}
	return out
}
