package artifact

import (
	"path/filepath"
	"strings"
)

// Kind is a class of file the compiler generates for each source.
type Kind string

const (
	Declaration Kind = ".d.ts"
	Script      Kind = ".js"
	SourceMap   Kind = ".map"
)

// Kinds lists every generated kind in capture order.
var Kinds = []Kind{Declaration, Script, SourceMap}

const sourceSuffix = ".ts"

// GeneratedName returns the base name of the file of kind k produced for
// source. The source's base name has its ".ts" suffix replaced by the kind's
// suffix; a name without that suffix simply gets the kind's suffix appended.
func GeneratedName(source string, k Kind) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, sourceSuffix) + string(k)
}

// GeneratedNames returns the generated file names for every source and kind,
// without duplicates, in source order.
func GeneratedNames(sources []string) []string {
	seen := make(map[string]struct{}, len(sources)*len(Kinds))
	names := make([]string, 0, len(sources)*len(Kinds))
	for _, src := range sources {
		for _, k := range Kinds {
			name := GeneratedName(src, k)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
