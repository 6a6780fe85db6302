package tsconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshal_IsStable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := mustParse(t, `{"b": 1, "a": {"z": true, "y": [3, 2, 1]}, "c": "x<y"}`)

	// --- Act ---
	first, err := doc.Marshal()
	require.NoError(t, err)
	second, err := doc.Clone().Marshal()
	require.NoError(t, err)

	// --- Assert ---
	require.Equal(t, string(first), string(second))
	require.Equal(t, "{\n  \"a\": {\n    \"y\": [\n      3,\n      2,\n      1\n    ],\n    \"z\": true\n  },\n  \"b\": 1,\n  \"c\": \"x<y\"\n}\n", string(first))
}

func TestMarshal_PreservesNumbers(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"n": 1.50, "big": 12345678901234567890}`)
	out, err := doc.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(out), `"n": 1.50`)
	require.Contains(t, string(out), `"big": 12345678901234567890`)
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"not json":      `{`,
		"array at root": `[]`,
		"trailing data": `{} {}`,
	}
	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDocument([]byte(input))
			require.Error(t, err)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"compilerOptions": {"lib": ["esnext"]}}`)
	clone := doc.Clone()

	opts, err := clone.compilerOptions()
	require.NoError(t, err)
	opts["lib"].([]any)[0] = "es5"

	v, _ := doc.CompilerOption("lib")
	require.Equal(t, []any{"esnext"}, v)
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "tsconfig.base.json")
	require.NoError(t, os.WriteFile(good, []byte(baseTemplate), 0644))
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"compilerOptions":`), 0644))

	doc, err := LoadTemplate(good)
	require.NoError(t, err)
	v, ok := doc.CompilerOption("strict")
	require.True(t, ok)
	require.Equal(t, true, v)

	var tmplErr *TemplateError
	_, err = LoadTemplate(bad)
	require.ErrorAs(t, err, &tmplErr)
	require.Equal(t, bad, tmplErr.Path)

	_, err = LoadTemplate(filepath.Join(dir, "missing.json"))
	require.ErrorAs(t, err, &tmplErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}
