// Package analyzer is the facade over the extraction strategies. It detects
// the input language, dispatches to the matching extractor/scanner
// combination, and shapes the four public operations.
//
// Every operation is a pure function of its input: no state survives a
// call, so concurrent use needs no coordination. Failures of any kind are
// converted into {success:false, error} result values at this boundary;
// nothing propagates as a panic or error to the caller.
package analyzer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mvp-joe/codescope/internal/comments"
	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/inherit"
	"github.com/mvp-joe/codescope/internal/lang"
	"github.com/mvp-joe/codescope/internal/parsers"
	"github.com/mvp-joe/codescope/internal/summary"
)

// Analyzer exposes the four public operations. The zero value is ready to
// use.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

var errEmptySource = errors.New("malformed input: source is empty")

// resolve picks the extractor variant: an explicit language bypasses
// detection, "auto" (or empty) runs the detector.
func (a *Analyzer) resolve(source, filePath, language string) (parsers.Extractor, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errEmptySource
	}

	var detected lang.Language
	switch {
	case language == "" || language == lang.Auto:
		detected = lang.Detect(source, filePath)
	case lang.Supported(language):
		detected = lang.Language(language)
	default:
		return nil, fmt.Errorf("unsupported language: %q", language)
	}

	return parsers.ForLanguage(detected)
}

// ExtractFunctions extracts every function from the source unit.
func (a *Analyzer) ExtractFunctions(source string, opts FunctionsOptions) (res *FunctionsResult) {
	start := time.Now()
	res = &FunctionsResult{Functions: []extract.FunctionInfo{}}
	defer finish(start, &res.Metadata, &res.Success, &res.Error)

	ext, err := a.resolve(source, opts.FilePath, opts.Language)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	fillMeta(&res.Metadata, ext)

	fns, notes, err := ext.ExtractFunctions(source, parsers.Options{
		IncludePrivate:     opts.IncludePrivate,
		ExtractDocstrings:  opts.ExtractDocstrings,
		ComplexityAnalysis: opts.ComplexityAnalysis,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Functions = fns
	res.Metadata.Notes = notes
	res.Success = true
	return res
}

// ExtractClasses extracts classes, their relationships, and the module's
// maximum inheritance depth.
func (a *Analyzer) ExtractClasses(source string, opts ClassesOptions) (res *ClassesResult) {
	start := time.Now()
	res = &ClassesResult{
		Classes:       []extract.ClassInfo{},
		Relationships: []extract.Relationship{},
	}
	defer finish(start, &res.Metadata, &res.Success, &res.Error)

	ext, err := a.resolve(source, opts.FilePath, opts.Language)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	fillMeta(&res.Metadata, ext)

	classes, notes, err := ext.ExtractClasses(source, parsers.Options{
		IncludePrivate:     opts.IncludePrivate,
		ExtractDocstrings:  true,
		ComplexityAnalysis: true,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Classes = classes
	res.Metadata.Notes = notes

	analysis := inherit.New(classes)
	if opts.ExtractRelationships {
		res.Relationships = analysis.Relationships()
	}
	if opts.AnalyzeInheritance {
		res.Metadata.InheritanceDepth = analysis.MaxDepth()
	}

	res.Success = true
	return res
}

// ExtractComments scans for comments, TODO markers, and docstrings.
func (a *Analyzer) ExtractComments(source string, opts CommentsOptions) (res *CommentsResult) {
	start := time.Now()
	res = &CommentsResult{
		Comments:   []extract.Comment{},
		Docstrings: []extract.Docstring{},
		Todos:      []extract.Todo{},
	}
	defer finish(start, &res.Metadata, &res.Success, &res.Error)

	ext, err := a.resolve(source, opts.FilePath, opts.Language)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	fillMeta(&res.Metadata, ext)

	scanned := comments.NewScanner(ext.Language()).Scan(source, opts.IncludeDocstrings, opts.IncludeTodos)
	res.Comments = scanned.Comments
	res.Todos = scanned.Todos
	res.Docstrings = scanned.Docstrings

	// The primary language carries docstrings in the grammar; a parse
	// failure here only costs the docstring list, not the scan.
	if opts.IncludeDocstrings {
		if py, ok := ext.(*parsers.PythonExtractor); ok {
			docs, derr := py.ExtractDocstrings(source)
			if derr != nil {
				res.Metadata.Notes = append(res.Metadata.Notes, derr.Error())
			} else {
				res.Docstrings = docs
			}
		}
	}

	res.Success = true
	return res
}

// SummarizeCode produces the statistics, inferred purpose, and prose
// summary of a source unit.
func (a *Analyzer) SummarizeCode(source string, opts SummarizeOptions) (res *SummarizeResult) {
	start := time.Now()
	res = &SummarizeResult{}
	defer finish(start, &res.Metadata, &res.Success, &res.Error)

	ext, err := a.resolve(source, opts.FilePath, opts.Language)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	fillMeta(&res.Metadata, ext)

	popts := parsers.Options{
		ExtractDocstrings:  true,
		ComplexityAnalysis: opts.IncludeComplexity,
	}
	fns, notes, err := ext.ExtractFunctions(source, popts)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	classes, cnotes, err := ext.ExtractClasses(source, popts)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Metadata.Notes = append(notes, cnotes...)

	scanned := comments.NewScanner(ext.Language()).Scan(source, true, opts.IncludeTodos)

	in := summary.Input{
		Source:           source,
		Language:         ext.Language(),
		Functions:        fns,
		Classes:          classes,
		Todos:            scanned.Todos,
		ModuleDoc:        moduleDocstring(ext, scanned, source),
		InheritanceDepth: inherit.New(classes).MaxDepth(),
	}

	s := summary.Generate(in, summary.Options{
		Length:            opts.SummaryLength,
		IncludeComplexity: opts.IncludeComplexity,
		IncludeTodos:      opts.IncludeTodos,
	})

	res.ModulePurpose = s.ModulePurpose
	res.Structure = s.Structure
	res.Statistics = s.Statistics
	res.Summary = s.Text
	res.Todos = s.Todos
	res.Complexity = s.Complexity
	res.Success = true
	return res
}

// moduleDocstring finds the module-level docstring: from the grammar for
// the primary language, from recovered JSDoc otherwise.
func moduleDocstring(ext parsers.Extractor, scanned *comments.Result, source string) *extract.Docstring {
	if py, ok := ext.(*parsers.PythonExtractor); ok {
		docs, err := py.ExtractDocstrings(source)
		if err == nil {
			for i := range docs {
				if docs[i].Type == "module" {
					return &docs[i]
				}
			}
		}
		return nil
	}

	for i := range scanned.Docstrings {
		if scanned.Docstrings[i].Type == "module" {
			return &scanned.Docstrings[i]
		}
	}
	return nil
}

func fillMeta(m *Metadata, ext parsers.Extractor) {
	m.Language = string(ext.Language())
	m.LanguageConfidence = ext.Confidence()
}

// finish stamps the processing time and converts any escaped panic into a
// failed result, keeping the no-unhandled-fault contract.
func finish(start time.Time, m *Metadata, success *bool, errStr *string) {
	if r := recover(); r != nil {
		*success = false
		*errStr = fmt.Sprintf("internal error: %v", r)
	}
	m.ProcessingTime = time.Since(start).Seconds()
}
