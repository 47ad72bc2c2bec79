// Package parsers implements the two extraction strategies: a full-grammar
// tree-sitter traversal for Python and a line/regex heuristic pass for the
// JavaScript family. Both produce the record shapes in internal/extract.
package parsers

import (
	"fmt"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
)

// Confidence describes how faithful an extraction strategy is.
const (
	ConfidenceFull      = "full"
	ConfidenceHeuristic = "heuristic"
)

// Options controls a single extraction call.
type Options struct {
	IncludePrivate     bool
	ExtractDocstrings  bool
	ComplexityAnalysis bool
}

// DefaultOptions returns the option defaults shared by every operation.
func DefaultOptions() Options {
	return Options{
		IncludePrivate:     false,
		ExtractDocstrings:  true,
		ComplexityAnalysis: true,
	}
}

// Extractor is the strategy interface. The language detector picks the
// concrete variant; callers never branch on which one ran apart from the
// confidence flag.
//
// Notes carry per-node extraction failures that were isolated rather than
// allowed to abort the call.
type Extractor interface {
	Language() lang.Language
	Confidence() string
	ExtractFunctions(source string, opts Options) (fns []extract.FunctionInfo, notes []string, err error)
	ExtractClasses(source string, opts Options) (classes []extract.ClassInfo, notes []string, err error)
}

// SyntaxError reports malformed primary-language input. It aborts only the
// current call and is carried inside the result, never raised further.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// ForLanguage returns the extractor variant for a detected language.
func ForLanguage(l lang.Language) (Extractor, error) {
	switch l {
	case lang.Python:
		return NewPythonExtractor(), nil
	case lang.JavaScript:
		return NewJavaScriptExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
}
