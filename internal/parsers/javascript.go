package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
)

// JavaScriptExtractor is the heuristic strategy for the JS family. It runs
// fixed line patterns instead of building a grammar, so line ranges are
// single-line approximations and complexity is reported as the constant
// minimum. Callers see this trade-off via the heuristic confidence flag.
type JavaScriptExtractor struct{}

// NewJavaScriptExtractor creates the JavaScript extractor.
func NewJavaScriptExtractor() *JavaScriptExtractor {
	return &JavaScriptExtractor{}
}

var (
	jsFunctionRe = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:default\s+)?(async\s+)?function\s*(\*)?\s*([\w$]+)\s*\(([^)]*)\)`)
	jsArrowRe    = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:const|let|var)\s+([\w$]+)\s*=\s*(async\s+)?(?:\(([^)]*)\)|([\w$]+))\s*=>`)
	jsMethodRe   = regexp.MustCompile(`^(\s*)(static\s+)?(async\s+)?(\*\s*)?([\w$#]+)\s*\(([^)]*)\)\s*\{\s*$`)
	jsClassRe    = regexp.MustCompile(`^(\s*)(?:export\s+)?(?:default\s+)?(abstract\s+)?class\s+([\w$]+)(?:\s+extends\s+([\w$.]+))?`)
)

// Keywords that the method-shorthand pattern would otherwise match.
var jsControlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "function": true, "return": true, "do": true,
}

// heuristicComplexity is the deliberate constant fallback for the regex
// path: no grammar means no branch counting.
func heuristicComplexity() *extract.ComplexityMetrics {
	return &extract.ComplexityMetrics{Cyclomatic: 1, Cognitive: 1, LinesOfCode: 1}
}

func (e *JavaScriptExtractor) Language() lang.Language { return lang.JavaScript }

func (e *JavaScriptExtractor) Confidence() string { return ConfidenceHeuristic }

// ExtractFunctions matches named function declarations and arrow-function
// bindings, line by line.
func (e *JavaScriptExtractor) ExtractFunctions(source string, opts Options) ([]extract.FunctionInfo, []string, error) {
	fns := []extract.FunctionInfo{}

	for i, line := range strings.Split(source, "\n") {
		lineNo := i + 1

		if m := jsFunctionRe.FindStringSubmatch(line); m != nil {
			fn := e.buildFunction(m[4], m[5], m[2] != "", m[3] != "", lineNo, opts)
			if fn != nil {
				fns = append(fns, *fn)
			}
			continue
		}

		if m := jsArrowRe.FindStringSubmatch(line); m != nil {
			params := m[4]
			if params == "" {
				params = m[5]
			}
			fn := e.buildFunction(m[2], params, m[3] != "", false, lineNo, opts)
			if fn != nil {
				fns = append(fns, *fn)
			}
		}
	}

	return fns, nil, nil
}

// ExtractClasses matches class declarations with a single-inheritance
// extends clause and attaches shorthand methods found in the class body.
func (e *JavaScriptExtractor) ExtractClasses(source string, opts Options) ([]extract.ClassInfo, []string, error) {
	classes := []extract.ClassInfo{}
	lines := strings.Split(source, "\n")

	var current *extract.ClassInfo
	currentIndent := 0

	flush := func() {
		if current != nil {
			classes = append(classes, *current)
			current = nil
		}
	}

	for i, line := range lines {
		lineNo := i + 1

		if m := jsClassRe.FindStringSubmatch(line); m != nil {
			flush()
			name := m[3]
			if !opts.IncludePrivate && extract.IsPrivateName(name) {
				continue
			}

			ci := &extract.ClassInfo{
				Name:      name,
				LineStart: lineNo,
				LineEnd:   lineNo,
				Inheritance: extract.Inheritance{
					Parents:    []string{},
					Interfaces: []string{},
					Mixins:     []string{},
				},
				Methods:    []extract.FunctionInfo{},
				Attributes: []extract.Attribute{},
				IsAbstract: m[2] != "",
			}
			if m[4] != "" {
				ci.Inheritance.Parents = append(ci.Inheritance.Parents, m[4])
			}
			current = ci
			currentIndent = len(m[1])
			continue
		}

		if current == nil {
			continue
		}

		// A closing brace at the class's own indentation ends the body.
		trimmed := strings.TrimSpace(line)
		if trimmed == "}" && indentOf(line) <= currentIndent {
			current.LineEnd = lineNo
			flush()
			continue
		}

		if m := jsMethodRe.FindStringSubmatch(line); m != nil && !jsControlKeywords[m[5]] {
			name := strings.TrimPrefix(m[5], "#")
			if !opts.IncludePrivate && (strings.HasPrefix(m[5], "#") || extract.IsPrivateName(name)) {
				continue
			}

			method := extract.FunctionInfo{
				Name:        name,
				LineStart:   lineNo,
				LineEnd:     lineNo,
				IsAsync:     m[3] != "",
				IsGenerator: m[4] != "",
				IsStatic:    m[2] != "",
				Parameters:  parseJSParams(m[6]),
				Visibility:  extract.ClassifyVisibility(name),
			}
			method.Signature = buildSignature(name, method.Parameters, "")
			if opts.ComplexityAnalysis {
				method.Complexity = heuristicComplexity()
			}
			current.Methods = append(current.Methods, method)
		}
	}

	flush()
	return classes, nil, nil
}

func (e *JavaScriptExtractor) buildFunction(name, params string, isAsync, isGenerator bool, lineNo int, opts Options) *extract.FunctionInfo {
	if !opts.IncludePrivate && extract.IsPrivateName(name) {
		return nil
	}

	fn := &extract.FunctionInfo{
		Name:        name,
		LineStart:   lineNo,
		LineEnd:     lineNo,
		IsAsync:     isAsync,
		IsGenerator: isGenerator,
		Parameters:  parseJSParams(params),
		Visibility:  extract.ClassifyVisibility(name),
	}
	fn.Signature = buildSignature(name, fn.Parameters, "")
	if opts.ComplexityAnalysis {
		fn.Complexity = heuristicComplexity()
	}
	return fn
}

// parseJSParams splits a parameter list, keeping rest parameters and
// default expressions.
func parseJSParams(raw string) []extract.Parameter {
	out := []extract.Parameter{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		param := extract.Parameter{Type: "Any"}
		if eq := strings.Index(part, "="); eq >= 0 {
			param.Name = strings.TrimSpace(part[:eq])
			param.Default = strings.TrimSpace(part[eq+1:])
			param.HasDefault = true
		} else {
			param.Name = part
		}
		out = append(out, param)
	}

	return out
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
