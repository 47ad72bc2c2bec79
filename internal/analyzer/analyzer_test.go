package analyzer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the analyzer facade:
// - Happy-path extraction fills success, metadata, and collections
// - Empty source fails with the malformed-input error
// - An unsupported explicit language fails without running extraction
// - Malformed primary-language source reports a syntax error in the result
// - File extensions steer detection; explicit language overrides it
// - ExtractClasses wires relationships and inheritance depth
// - ExtractComments prefers grammar docstrings for the primary language
// - SummarizeCode composes purpose, structure, statistics, and prose
// - Results are deterministic across repeated calls
// - No operation ever panics or returns a Go error to the caller

func TestExtractFunctions_Python(t *testing.T) {
	t.Parallel()

	source := `def f(a, b=2):
    if a:
        return b
    return 0
`
	res := New().ExtractFunctions(source, DefaultFunctionsOptions())

	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, "python", res.Metadata.Language)
	assert.Equal(t, "full", res.Metadata.LanguageConfidence)
	assert.GreaterOrEqual(t, res.Metadata.ProcessingTime, 0.0)

	require.Len(t, res.Functions, 1)
	fn := res.Functions[0]
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Parameters, 2)
	assert.True(t, fn.Parameters[1].HasDefault)

	require.NotNil(t, fn.Complexity)
	assert.Equal(t, 2, fn.Complexity.Cyclomatic)
	assert.Equal(t, 1, fn.Complexity.Cognitive)
}

func TestExtractFunctions_EmptySource(t *testing.T) {
	t.Parallel()

	res := New().ExtractFunctions("   \n\t\n", DefaultFunctionsOptions())

	assert.False(t, res.Success)
	assert.Equal(t, "malformed input: source is empty", res.Error)
	assert.Empty(t, res.Functions)
}

func TestExtractFunctions_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	opts := DefaultFunctionsOptions()
	opts.Language = "ruby"
	res := New().ExtractFunctions("def f; end\n", opts)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unsupported language")
}

func TestExtractFunctions_SyntaxError(t *testing.T) {
	t.Parallel()

	opts := DefaultFunctionsOptions()
	opts.Language = "python"
	res := New().ExtractFunctions("def broken(:\n    pass\n", opts)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "syntax error")
	assert.Empty(t, res.Functions)
}

func TestExtractFunctions_JavaScriptByPath(t *testing.T) {
	t.Parallel()

	opts := DefaultFunctionsOptions()
	opts.FilePath = "app.js"
	res := New().ExtractFunctions("function add(a, b) {\n  return a + b;\n}\n", opts)

	require.True(t, res.Success)
	assert.Equal(t, "javascript", res.Metadata.Language)
	assert.Equal(t, "heuristic", res.Metadata.LanguageConfidence)
	require.Len(t, res.Functions, 1)
	assert.Equal(t, "add", res.Functions[0].Name)
}

func TestExtractClasses_Inheritance(t *testing.T) {
	t.Parallel()

	source := `class A:
    pass


class B(A):
    pass
`
	res := New().ExtractClasses(source, DefaultClassesOptions())

	require.True(t, res.Success)
	require.Len(t, res.Classes, 2)

	require.Len(t, res.Relationships, 1)
	assert.Equal(t, "B", res.Relationships[0].Source)
	assert.Equal(t, "A", res.Relationships[0].Target)

	assert.Equal(t, 2, res.Metadata.InheritanceDepth)
}

func TestExtractClasses_NoRelationshipsOnRequest(t *testing.T) {
	t.Parallel()

	opts := DefaultClassesOptions()
	opts.ExtractRelationships = false
	opts.AnalyzeInheritance = false
	res := New().ExtractClasses("class A:\n    pass\n", opts)

	require.True(t, res.Success)
	assert.Empty(t, res.Relationships)
	assert.Equal(t, 0, res.Metadata.InheritanceDepth)
}

func TestExtractComments_Python(t *testing.T) {
	t.Parallel()

	source := `"""Module doc."""

# TODO: clean this up
x = 1  # inline note
`
	res := New().ExtractComments(source, DefaultCommentsOptions())

	require.True(t, res.Success)
	assert.Len(t, res.Comments, 2)

	require.Len(t, res.Todos, 1)
	assert.Equal(t, "TODO", res.Todos[0].Marker)
	assert.Equal(t, "medium", res.Todos[0].Priority)

	// docstrings come from the grammar, not the line scan
	require.Len(t, res.Docstrings, 1)
	assert.Equal(t, "module", res.Docstrings[0].Type)
	assert.Equal(t, "Module doc.", res.Docstrings[0].Summary)
}

func TestExtractComments_DocstringsDisabled(t *testing.T) {
	t.Parallel()

	opts := DefaultCommentsOptions()
	opts.IncludeDocstrings = false
	res := New().ExtractComments("\"\"\"Doc.\"\"\"\nx = 1\n", opts)

	require.True(t, res.Success)
	assert.Empty(t, res.Docstrings)
}

func TestExtractComments_MalformedSourceStillScans(t *testing.T) {
	t.Parallel()

	// the line scan is grammar-free, so broken syntax only costs the
	// docstring list
	opts := DefaultCommentsOptions()
	opts.Language = "python"
	res := New().ExtractComments("# a comment\ndef broken(:\n", opts)

	require.True(t, res.Success)
	assert.Len(t, res.Comments, 1)
	assert.Empty(t, res.Docstrings)
	assert.NotEmpty(t, res.Metadata.Notes)
}

func TestSummarizeCode_Python(t *testing.T) {
	t.Parallel()

	source := `"""Parse incoming records."""
import json


def parse(raw):
    """Parse one record."""
    if raw:
        return json.loads(raw)
    return None
`
	res := New().SummarizeCode(source, DefaultSummarizeOptions())

	require.True(t, res.Success)
	assert.Equal(t, "Parse incoming records.", res.ModulePurpose)
	assert.Equal(t, []string{"parse"}, res.Structure.Functions)
	assert.Equal(t, []string{"import json"}, res.Structure.Imports)
	assert.Equal(t, 10, res.Statistics.TotalLines)
	assert.NotEmpty(t, res.Summary)
	require.NotNil(t, res.Complexity)
	assert.Equal(t, 2, res.Complexity.Cyclomatic)
}

func TestSummarizeCode_SyntaxError(t *testing.T) {
	t.Parallel()

	opts := DefaultSummarizeOptions()
	opts.Language = "python"
	res := New().SummarizeCode("def broken(:\n", opts)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "syntax error")
}

func TestExtractClasses_PythonFixture(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile("../../testdata/code/python/service.py")
	require.NoError(t, err)

	opts := DefaultClassesOptions()
	opts.FilePath = "service.py"
	res := New().ExtractClasses(string(source), opts)

	require.True(t, res.Success)
	require.Len(t, res.Classes, 2)
	assert.Equal(t, "Repository", res.Classes[0].Name)
	assert.Equal(t, "UserRepository", res.Classes[1].Name)
	assert.Equal(t, []string{"Repository"}, res.Classes[1].Inheritance.Parents)

	require.Len(t, res.Relationships, 1)
	assert.Equal(t, "UserRepository inherits from Repository", res.Relationships[0].Description)
	assert.Equal(t, 2, res.Metadata.InheritanceDepth)
}

func TestExtractComments_JavaScriptFixture(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile("../../testdata/code/javascript/app.js")
	require.NoError(t, err)

	opts := DefaultCommentsOptions()
	opts.FilePath = "app.js"
	res := New().ExtractComments(string(source), opts)

	require.True(t, res.Success)
	assert.Equal(t, "javascript", res.Metadata.Language)

	require.Len(t, res.Todos, 1)
	assert.Equal(t, "FIXME", res.Todos[0].Marker)
	assert.Equal(t, "high", res.Todos[0].Priority)

	require.Len(t, res.Docstrings, 1)
	assert.Equal(t, "module", res.Docstrings[0].Type)
	assert.Equal(t, "Shopping cart logic.", res.Docstrings[0].Summary)
}

func TestOperations_Deterministic(t *testing.T) {
	t.Parallel()

	source := `def a():
    pass


def b(x):
    return x
`
	first := New().ExtractFunctions(source, DefaultFunctionsOptions())
	second := New().ExtractFunctions(source, DefaultFunctionsOptions())

	require.True(t, first.Success)
	assert.Equal(t, first.Functions, second.Functions)
	assert.Equal(t, first.Metadata.Language, second.Metadata.Language)
}
