package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for docstring parsing:
// - Google-style Args/Returns/Raises sections with typed entries
// - Continuation lines extend the previous argument description
// - Sphinx :param/:returns/:raises fields
// - Unstructured text falls back to summary + description
// - Both paths fill the same fields
// - Quote stripping handles triple and single quote syntax with prefixes

func TestParseDocstring_GoogleStyle(t *testing.T) {
	t.Parallel()

	raw := `Divide a by b.

Args:
    a (int): numerator
    b (int): denominator
        given as a whole number

Returns:
    float: the quotient

Raises:
    ZeroDivisionError: when b is zero
`
	doc := ParseDocstring(raw, "function", "divide", 2)

	assert.Equal(t, "Divide a by b.", doc.Summary)
	assert.Equal(t, "function", doc.Type)
	assert.Equal(t, "divide", doc.Parent)
	assert.Equal(t, 2, doc.Line)

	require.Contains(t, doc.Args, "a")
	assert.Equal(t, "int", doc.Args["a"].Type)
	assert.Equal(t, "numerator", doc.Args["a"].Description)

	require.Contains(t, doc.Args, "b")
	assert.Equal(t, "denominator given as a whole number", doc.Args["b"].Description)

	assert.Equal(t, "float: the quotient", doc.Returns)

	require.Len(t, doc.Raises, 1)
	assert.Equal(t, "ZeroDivisionError", doc.Raises[0].Exception)
	assert.Equal(t, "when b is zero", doc.Raises[0].Description)
}

func TestParseDocstring_SphinxStyle(t *testing.T) {
	t.Parallel()

	raw := `Compute a total.

:param int a: the first value
:param b: the second value
:returns: the total
:raises ValueError: on bad input
`
	doc := ParseDocstring(raw, "function", "total", 1)

	assert.Equal(t, "Compute a total.", doc.Summary)

	require.Contains(t, doc.Args, "a")
	assert.Equal(t, "int", doc.Args["a"].Type)
	assert.Equal(t, "the first value", doc.Args["a"].Description)
	require.Contains(t, doc.Args, "b")

	assert.Equal(t, "the total", doc.Returns)

	require.Len(t, doc.Raises, 1)
	assert.Equal(t, "ValueError", doc.Raises[0].Exception)
}

func TestParseDocstring_Fallback(t *testing.T) {
	t.Parallel()

	raw := `Load the configuration.

Reads the file from disk and merges
environment overrides on top.
`
	doc := ParseDocstring(raw, "function", "load", 1)

	assert.Equal(t, "Load the configuration.", doc.Summary)
	assert.Equal(t, "Reads the file from disk and merges\nenvironment overrides on top.", doc.Description)
	assert.Empty(t, doc.Args)
	assert.Empty(t, doc.Returns)
	assert.Empty(t, doc.Raises)
}

func TestParseDocstring_SingleLine(t *testing.T) {
	t.Parallel()

	doc := ParseDocstring("Do the thing.", "method", "run", 7)

	assert.Equal(t, "Do the thing.", doc.Summary)
	assert.Empty(t, doc.Description)
	assert.Equal(t, "Do the thing.", doc.Raw)
}

func TestStripDocstringQuotes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", stripDocstringQuotes(`"""hello"""`))
	assert.Equal(t, "hello", stripDocstringQuotes("'''hello'''"))
	assert.Equal(t, "hello", stripDocstringQuotes(`"hello"`))
	assert.Equal(t, "hello", stripDocstringQuotes(`r"""hello"""`))
	assert.Equal(t, "hello", stripDocstringQuotes(`u'hello'`))
}
