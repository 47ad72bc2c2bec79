package comments

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
)

var todoRe = regexp.MustCompile(`(?i)\b(TODO|FIXME|NOTE|HACK|BUG)\b[:\s]*(.*)`)

// todoPriority maps marker keywords to priority buckets.
var todoPriority = map[string]string{
	"BUG":   "high",
	"FIXME": "high",
	"HACK":  "medium",
	"TODO":  "medium",
	"NOTE":  "low",
}

// extractTodos runs marker matching over one ungrouped comment's text.
func extractTodos(c extract.Comment, lines []string, l lang.Language) []extract.Todo {
	var out []extract.Todo

	m := todoRe.FindStringSubmatch(c.Text)
	if m == nil {
		return out
	}

	marker := strings.ToUpper(m[1])
	text := strings.TrimSpace(m[2])
	if text == "" {
		text = c.Text
	}

	markerStr := "#"
	if l == lang.JavaScript {
		markerStr = "//"
	}

	out = append(out, extract.Todo{
		Text:     text,
		Marker:   marker,
		Line:     c.LineStart,
		Context:  inferContext(lines, c.LineStart, c.Indentation, l, markerStr),
		Priority: todoPriority[marker],
	})
	return out
}

var controlKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "else:": true,
	"for": true, "while": true, "try": true, "try:": true,
	"with": true, "except": true, "finally": true, "switch": true,
}

// inferContext walks backward from a comment to the nearest enclosing
// construct keyword at equal-or-lower indentation. A function that itself
// sits inside a class classifies the comment as method context.
func inferContext(lines []string, commentLine, indent int, l lang.Language, marker string) string {
	for i := commentLine - 2; i >= 0; i-- {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, marker) {
			continue
		}

		li := indentOf(line)
		if li > indent {
			continue
		}

		switch {
		case isFunctionLine(trimmed, l):
			if enclosedByClass(lines, i, li, marker) {
				return "method"
			}
			return "function"
		case strings.HasPrefix(trimmed, "class "):
			return "class"
		case controlKeywords[firstWord(trimmed)]:
			return "control_flow"
		}
	}
	return "module"
}

func isFunctionLine(trimmed string, l lang.Language) bool {
	if l == lang.JavaScript {
		return strings.HasPrefix(trimmed, "function ") ||
			strings.Contains(trimmed, "=>") ||
			strings.HasPrefix(trimmed, "async function")
	}
	return strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "async def ")
}

// enclosedByClass reports whether the construct at lineIdx sits inside a
// class body.
func enclosedByClass(lines []string, lineIdx, indent int, marker string) bool {
	for i := lineIdx - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, marker) {
			continue
		}
		li := indentOf(lines[i])
		if li >= indent {
			continue
		}
		return strings.HasPrefix(trimmed, "class ") || strings.Contains(trimmed, "class ")
	}
	return false
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '(' {
			return s[:i]
		}
	}
	return s
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
