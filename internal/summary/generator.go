// Package summary synthesizes a natural-language description of one source
// unit from the extraction results.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
)

// Length values for the prose summary.
const (
	LengthBrief    = "brief"
	LengthMedium   = "medium"
	LengthDetailed = "detailed"
)

// Input carries everything the generator composes from. All fields are
// per-call values; the generator keeps no state.
type Input struct {
	Source           string
	Language         lang.Language
	Functions        []extract.FunctionInfo
	Classes          []extract.ClassInfo
	ModuleDoc        *extract.Docstring
	Todos            []extract.Todo
	InheritanceDepth int
}

// Options gates the optional clauses.
type Options struct {
	Length            string
	IncludeComplexity bool
	IncludeTodos      bool
}

// purposeCategory maps identifier keywords to a templated purpose sentence.
// Matching runs in the declared precedence order; the first hit wins.
type purposeCategory struct {
	name     string
	keywords []string
	sentence string
}

var purposeCategories = []purposeCategory{
	{"test", []string{"test", "spec", "mock", "fixture", "assert"},
		"This module contains test code."},
	{"configuration", []string{"config", "settings", "options", "env"},
		"This module manages configuration."},
	{"api-client", []string{"client", "request", "http", "api", "fetch"},
		"This module implements an API client."},
	{"data-processing", []string{"parse", "process", "transform", "convert", "load", "extract"},
		"This module processes and transforms data."},
	{"ui", []string{"view", "render", "widget", "component", "window"},
		"This module implements user interface components."},
	{"utility", []string{"util", "helper", "format", "common"},
		"This module provides utility functions."},
}

// Generate builds the summary record for one source unit.
func Generate(in Input, opts Options) *extract.Summary {
	if opts.Length == "" {
		opts.Length = LengthMedium
	}

	stats := computeStatistics(in.Source, in.Language)
	structure := computeStructure(in)

	s := &extract.Summary{
		ModulePurpose: inferPurpose(in, structure),
		Structure:     structure,
		Statistics:    stats,
	}

	if opts.IncludeComplexity {
		s.Complexity = aggregateComplexity(in, stats)
	}
	if opts.IncludeTodos && len(in.Todos) > 0 {
		s.Todos = in.Todos
	}

	s.Text = composeText(in, s, opts)
	return s
}

// computeStatistics counts blank, comment, and code lines.
func computeStatistics(source string, l lang.Language) extract.Statistics {
	marker := "#"
	if l == lang.JavaScript {
		marker = "//"
	}

	var stats extract.Statistics
	for _, line := range strings.Split(source, "\n") {
		stats.TotalLines++
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			stats.BlankLines++
		case strings.HasPrefix(trimmed, marker):
			stats.CommentLines++
		default:
			stats.CodeLines++
		}
	}

	if stats.CodeLines > 0 {
		stats.DocRatio = float64(stats.CommentLines) / float64(stats.CodeLines)
	}
	return stats
}

// computeStructure lists named items and scans imports, globals, and
// constants via language-specific line prefixes.
func computeStructure(in Input) extract.Structure {
	st := extract.Structure{
		Functions: []string{},
		Classes:   []string{},
		Imports:   []string{},
		Globals:   []string{},
		Constants: []string{},
	}

	for _, f := range in.Functions {
		st.Functions = append(st.Functions, f.Name)
	}
	for _, c := range in.Classes {
		st.Classes = append(st.Classes, c.Name)
	}

	for _, line := range strings.Split(in.Source, "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue // module level only
		}
		trimmed := strings.TrimSpace(line)

		if isImportLine(trimmed, in.Language) {
			st.Imports = append(st.Imports, trimmed)
			continue
		}

		if name, ok := assignedName(trimmed, in.Language); ok {
			if isConstantName(name) {
				st.Constants = append(st.Constants, name)
			} else {
				st.Globals = append(st.Globals, name)
			}
		}
	}

	return st
}

func isImportLine(trimmed string, l lang.Language) bool {
	if l == lang.JavaScript {
		return strings.HasPrefix(trimmed, "import ") ||
			strings.Contains(trimmed, "require(")
	}
	return strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ")
}

// assignedName extracts the target of a module-level assignment line.
func assignedName(trimmed string, l lang.Language) (string, bool) {
	if l == lang.JavaScript {
		for _, kw := range []string{"const ", "let ", "var "} {
			if rest, ok := strings.CutPrefix(trimmed, kw); ok {
				return identifierPrefix(rest), identifierPrefix(rest) != ""
			}
		}
		return "", false
	}

	eq := strings.Index(trimmed, "=")
	if eq <= 0 || (eq+1 < len(trimmed) && trimmed[eq+1] == '=') {
		return "", false
	}
	name := strings.TrimSpace(trimmed[:eq])
	if i := strings.Index(name, ":"); i > 0 {
		name = strings.TrimSpace(name[:i]) // annotated assignment
	}
	if !isIdentifier(name) {
		return "", false
	}
	return name, true
}

func identifierPrefix(s string) string {
	end := 0
	for end < len(s) && (isWordByte(s[end]) || s[end] == '$') {
		end++
	}
	return s[:end]
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isConstantName reports ALL_CAPS naming.
func isConstantName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			return false
		}
	}
	return true
}

// inferPurpose prefers the module docstring, then identifier-category
// matching, then a generic structural fallback.
func inferPurpose(in Input, st extract.Structure) string {
	if in.ModuleDoc != nil && in.ModuleDoc.Summary != "" {
		purpose := in.ModuleDoc.Summary
		if in.ModuleDoc.Description != "" {
			if first := strings.SplitN(in.ModuleDoc.Description, "\n", 2)[0]; first != "" {
				purpose += " " + first
			}
		}
		return purpose
	}

	names := strings.ToLower(strings.Join(st.Functions, " ") + " " +
		strings.Join(st.Classes, " ") + " " + strings.Join(st.Imports, " "))
	for _, cat := range purposeCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(names, kw) {
				return cat.sentence
			}
		}
	}

	return fmt.Sprintf("Module with %d classes and %d functions.",
		len(st.Classes), len(st.Functions))
}

// aggregateComplexity reports the worst-case scores across all functions
// and methods, with lines of code taken from the whole unit.
func aggregateComplexity(in Input, stats extract.Statistics) *extract.ComplexityMetrics {
	agg := &extract.ComplexityMetrics{LinesOfCode: stats.CodeLines}

	consider := func(m *extract.ComplexityMetrics) {
		if m == nil {
			return
		}
		if m.Cyclomatic > agg.Cyclomatic {
			agg.Cyclomatic = m.Cyclomatic
		}
		if m.Cognitive > agg.Cognitive {
			agg.Cognitive = m.Cognitive
		}
	}

	for i := range in.Functions {
		consider(in.Functions[i].Complexity)
	}
	for i := range in.Classes {
		for j := range in.Classes[i].Methods {
			consider(in.Classes[i].Methods[j].Complexity)
		}
	}
	return agg
}

// composeText builds the prose summary from a fixed ordered clause list,
// each clause gated by the requested length.
func composeText(in Input, s *extract.Summary, opts Options) string {
	detailed := opts.Length == LengthDetailed
	var clauses []string

	clauses = append(clauses, s.ModulePurpose)

	if n := len(in.Classes); n > 0 {
		clause := fmt.Sprintf("It defines %d %s (%s)", n, plural("class", "classes", n),
			joinFirst(s.Structure.Classes, 3))
		if in.InheritanceDepth > 1 {
			clause += fmt.Sprintf(" with an inheritance depth of %d", in.InheritanceDepth)
		}
		clauses = append(clauses, clause+".")
	}

	if n := len(in.Functions); n > 0 {
		clauses = append(clauses, fmt.Sprintf("It contains %d %s (%s).",
			n, plural("function", "functions", n), joinFirst(s.Structure.Functions, 3)))
	}

	if detailed && s.Complexity != nil && s.Complexity.Cyclomatic > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"The most complex routine has a cyclomatic complexity of %d.", s.Complexity.Cyclomatic))
	}

	if n := len(s.Structure.Imports); n > 0 {
		clauses = append(clauses, fmt.Sprintf("It depends on %d %s.",
			n, plural("import", "imports", n)))
	}

	if detailed && len(s.Todos) > 0 {
		markers := map[string]int{}
		for _, t := range s.Todos {
			markers[t.Marker]++
		}
		var parts []string
		for m, c := range markers {
			parts = append(parts, fmt.Sprintf("%d %s", c, m))
		}
		sort.Strings(parts)
		clauses = append(clauses, fmt.Sprintf("Outstanding work markers: %s.",
			strings.Join(parts, ", ")))
	}

	if detailed {
		clauses = append(clauses, fmt.Sprintf(
			"About %.0f%% of the code lines carry comments.", s.Statistics.DocRatio*100))
	}

	clauses = append(clauses, fmt.Sprintf("The file spans %d lines (%d code, %d comment, %d blank).",
		s.Statistics.TotalLines, s.Statistics.CodeLines,
		s.Statistics.CommentLines, s.Statistics.BlankLines))

	text := strings.Join(clauses, " ")
	if opts.Length == LengthBrief {
		text = firstSentences(text, 3)
	}
	return text
}

func plural(singular, plural string, n int) string {
	if n == 1 {
		return singular
	}
	return plural
}

func joinFirst(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:limit], ", ") + ", …"
}

// firstSentences truncates prose to the first n sentences.
func firstSentences(text string, n int) string {
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			count++
			if count == n {
				return text[:i+1]
			}
		}
	}
	return text
}
