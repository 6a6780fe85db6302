package artifact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratedName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		source string
		kind   Kind
		want   string
	}{
		{"front_end/common/a.ts", Declaration, "a.d.ts"},
		{"front_end/common/a.ts", Script, "a.js"},
		{"front_end/common/a.ts", SourceMap, "a.map"},
		{"b.test.ts", Declaration, "b.test.d.ts"},
		{"c.tsx.ts", Script, "c.tsx.js"},
		{"noext", Script, "noext.js"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, GeneratedName(tc.source, tc.kind), "source=%s kind=%s", tc.source, tc.kind)
	}
}

func TestGeneratedNames_Deduplicates(t *testing.T) {
	t.Parallel()

	got := GeneratedNames([]string{"x/a.ts", "y/a.ts", "b.ts"})
	require.Equal(t, []string{"a.d.ts", "a.js", "a.map", "b.d.ts", "b.js", "b.map"}, got)
}
