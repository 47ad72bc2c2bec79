package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/codescope/internal/extract"
)

// Docstring section headers in Google/NumPy style.
var sectionHeaders = map[string]string{
	"args":       "args",
	"arguments":  "args",
	"parameters": "args",
	"params":     "args",
	"returns":    "returns",
	"return":     "returns",
	"yields":     "returns",
	"raises":     "raises",
	"except":     "raises",
	"exceptions": "raises",
}

var (
	// name (type): description  /  name: description
	docArgRe = regexp.MustCompile(`^(\*{0,2}\w+)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)
	// :param name: description  and friends (Sphinx style)
	sphinxParamRe  = regexp.MustCompile(`^:param\s+(?:(\w+)\s+)?(\*{0,2}\w+)\s*:\s*(.*)$`)
	sphinxReturnRe = regexp.MustCompile(`^:returns?\s*:\s*(.*)$`)
	sphinxRaiseRe  = regexp.MustCompile(`^:raises?\s+(\w[\w.]*)\s*:\s*(.*)$`)
)

// ParseDocstring parses raw doc-comment text into the structured Docstring
// shape. Structured Google/NumPy/Sphinx sections are recognized when
// present; otherwise the line-based fallback applies: first non-empty line
// becomes the summary and the remaining lines the description. Both paths
// fill the same fields.
func ParseDocstring(raw, docType, parent string, line int) *extract.Docstring {
	doc := &extract.Docstring{
		Raw:    raw,
		Type:   docType,
		Parent: parent,
		Line:   line,
	}

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return doc
	}

	if !parseSections(lines, doc) {
		parseFallback(lines, doc)
	}
	return doc
}

// parseSections handles the structured path. It returns false when the text
// carries no recognizable structure, leaving the fallback to fill the doc.
func parseSections(lines []string, doc *extract.Docstring) bool {
	structured := false
	section := ""
	var desc []string
	var lastArg string

	for i, rawLine := range lines {
		trimmed := strings.TrimSpace(rawLine)

		if i == 0 {
			doc.Summary = trimmed
			continue
		}

		if header, ok := sectionHeaders[strings.ToLower(strings.TrimSuffix(trimmed, ":"))]; ok && strings.HasSuffix(trimmed, ":") {
			section = header
			structured = true
			continue
		}

		if m := sphinxParamRe.FindStringSubmatch(trimmed); m != nil {
			ensureArgs(doc)
			doc.Args[m[2]] = extract.DocstringArg{Description: m[3], Type: m[1]}
			structured = true
			continue
		}
		if m := sphinxReturnRe.FindStringSubmatch(trimmed); m != nil {
			doc.Returns = m[1]
			structured = true
			continue
		}
		if m := sphinxRaiseRe.FindStringSubmatch(trimmed); m != nil {
			doc.Raises = append(doc.Raises, extract.DocstringRaise{Exception: m[1], Description: m[2]})
			structured = true
			continue
		}

		switch section {
		case "args":
			if m := docArgRe.FindStringSubmatch(trimmed); m != nil {
				ensureArgs(doc)
				doc.Args[m[1]] = extract.DocstringArg{Description: m[3], Type: m[2]}
				lastArg = m[1]
			} else if trimmed != "" && lastArg != "" {
				// continuation line of the previous argument description
				arg := doc.Args[lastArg]
				arg.Description = strings.TrimSpace(arg.Description + " " + trimmed)
				doc.Args[lastArg] = arg
			}
		case "returns":
			if trimmed != "" {
				if doc.Returns != "" {
					doc.Returns += " "
				}
				doc.Returns += trimmed
			}
		case "raises":
			if m := docArgRe.FindStringSubmatch(trimmed); m != nil {
				doc.Raises = append(doc.Raises, extract.DocstringRaise{Exception: m[1], Description: m[3]})
			}
		default:
			if trimmed != "" {
				desc = append(desc, trimmed)
			}
		}
	}

	if !structured {
		return false
	}
	doc.Description = strings.Join(desc, "\n")
	return true
}

// parseFallback is the line-based path: first non-empty line is the summary,
// the rest the description; args/returns/raises stay empty.
func parseFallback(lines []string, doc *extract.Docstring) {
	var rest []string
	doc.Summary = ""
	for _, rawLine := range lines {
		trimmed := strings.TrimSpace(rawLine)
		if doc.Summary == "" {
			if trimmed != "" {
				doc.Summary = trimmed
			}
			continue
		}
		if trimmed != "" {
			rest = append(rest, trimmed)
		}
	}
	doc.Description = strings.Join(rest, "\n")
}

func ensureArgs(doc *extract.Docstring) {
	if doc.Args == nil {
		doc.Args = make(map[string]extract.DocstringArg)
	}
}

// stripDocstringQuotes removes the surrounding quote syntax from a Python
// string literal node's text.
func stripDocstringQuotes(s string) string {
	for _, prefix := range []string{"r", "R", "u", "U", "b", "B", "f", "F"} {
		s = strings.TrimPrefix(s, prefix)
	}
	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
