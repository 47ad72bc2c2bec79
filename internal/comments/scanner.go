// Package comments implements a string-literal-aware comment scan with
// block grouping, TODO extraction, and heuristic docstring recovery for
// languages whose grammar has no docstring construct.
package comments

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
	"github.com/mvp-joe/codescope/internal/parsers"
)

// Result is one scan's output.
type Result struct {
	Comments   []extract.Comment
	Docstrings []extract.Docstring
	Todos      []extract.Todo
}

// Scanner scans raw source text line by line.
type Scanner struct {
	language lang.Language
	marker   string
}

// NewScanner creates a scanner for the given language.
func NewScanner(l lang.Language) *Scanner {
	marker := "#"
	if l == lang.JavaScript {
		marker = "//"
	}
	return &Scanner{language: l, marker: marker}
}

var (
	jsdocTargetRe = regexp.MustCompile(`(?:function\s+([\w$]+)|class\s+([\w$]+)|(?:const|let|var)\s+([\w$]+)\s*=|([\w$]+)\s*\([^)]*\)\s*\{)`)
)

// Scan extracts comments (with block grouping), recovered docstrings, and
// TODO markers from source.
func (s *Scanner) Scan(source string, includeDocstrings, includeTodos bool) *Result {
	lines := strings.Split(source, "\n")
	res := &Result{
		Comments:   []extract.Comment{},
		Docstrings: []extract.Docstring{},
		Todos:      []extract.Todo{},
	}

	raw := s.collectLineComments(lines, res, includeDocstrings)

	if includeTodos {
		for _, c := range raw {
			res.Todos = append(res.Todos, extractTodos(c, lines, s.language)...)
		}
	}

	res.Comments = groupComments(raw)
	for i := range res.Comments {
		res.Comments[i].Context = inferContext(lines, res.Comments[i].LineStart, res.Comments[i].Indentation, s.language, s.marker)
	}

	return res
}

// collectLineComments returns ungrouped comments in source order. For the
// JS family it also folds /* */ blocks, routing /** */ JSDoc blocks into
// recovered docstrings.
func (s *Scanner) collectLineComments(lines []string, res *Result, includeDocstrings bool) []extract.Comment {
	var raw []extract.Comment

	inBlock := false
	blockStart := 0
	blockIndent := 0
	var blockText []string
	blockIsDoc := false

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if s.language == lang.JavaScript {
			if inBlock {
				if end := strings.Index(line, "*/"); end >= 0 {
					blockText = append(blockText, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line[:end]), "*")))
					s.flushBlock(res, &raw, blockText, blockStart, lineNo, blockIndent, blockIsDoc, lines, includeDocstrings)
					inBlock = false
				} else {
					blockText = append(blockText, strings.TrimSpace(strings.TrimPrefix(trimmed, "*")))
				}
				continue
			}

			if start := markerIndex(line, "/*"); start >= 0 {
				blockIsDoc = strings.HasPrefix(line[start:], "/**")
				open := strings.TrimPrefix(strings.TrimPrefix(line[start:], "/**"), "/*")
				if end := strings.Index(open, "*/"); end >= 0 {
					text := strings.TrimSpace(open[:end])
					s.flushBlock(res, &raw, []string{text}, lineNo, lineNo, start, blockIsDoc, lines, includeDocstrings)
				} else {
					inBlock = true
					blockStart = lineNo
					blockIndent = start
					blockText = nil
					if t := strings.TrimSpace(open); t != "" {
						blockText = append(blockText, t)
					}
				}
				continue
			}
		}

		idx := markerIndex(line, s.marker)
		if idx < 0 {
			continue
		}

		text := strings.TrimSpace(strings.TrimPrefix(line[idx:], s.marker))
		cType := "end_of_line"
		if strings.TrimSpace(line[:idx]) == "" {
			cType = "single_line"
		}

		raw = append(raw, extract.Comment{
			Text:        text,
			Type:        cType,
			LineStart:   lineNo,
			LineEnd:     lineNo,
			Indentation: idx,
		})
	}

	return raw
}

func (s *Scanner) flushBlock(res *Result, raw *[]extract.Comment, text []string, start, end, indent int, isDoc bool, lines []string, includeDocstrings bool) {
	joined := strings.TrimSpace(strings.Join(text, "\n"))

	if isDoc && includeDocstrings {
		docType, parent := jsdocTarget(lines, end)
		doc := parsers.ParseDocstring(joined, docType, parent, start)
		res.Docstrings = append(res.Docstrings, *doc)
		return
	}

	*raw = append(*raw, extract.Comment{
		Text:        joined,
		Type:        "block",
		LineStart:   start,
		LineEnd:     end,
		Indentation: indent,
	})
}

// jsdocTarget inspects the first code line after a JSDoc block to decide
// what the recovered docstring is attached to.
func jsdocTarget(lines []string, blockEnd int) (docType, parent string) {
	for i := blockEnd; i < len(lines) && i < blockEnd+2; i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		if m := jsdocTargetRe.FindStringSubmatch(t); m != nil {
			switch {
			case m[2] != "":
				return "class", m[2]
			case m[1] != "":
				return "function", m[1]
			case m[3] != "":
				return "function", m[3]
			default:
				return "method", m[4]
			}
		}
		break
	}
	return "module", ""
}

// markerIndex finds the first occurrence of marker that is not inside a
// string literal: a marker is in-string when the count of unescaped quote
// characters before it on the line is odd.
func markerIndex(line, marker string) int {
	from := 0
	for {
		rel := strings.Index(line[from:], marker)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		if !inString(line, idx) {
			return idx
		}
		from = idx + len(marker)
		if from >= len(line) {
			return -1
		}
	}
}

func inString(line string, pos int) bool {
	single, double, backtick := 0, 0, 0
	for i := 0; i < pos; i++ {
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		switch line[i] {
		case '\'':
			single++
		case '"':
			double++
		case '`':
			backtick++
		}
	}
	return single%2 == 1 || double%2 == 1 || backtick%2 == 1
}

// groupComments merges runs of adjacent single-line comments whose
// indentation differs by at most 2 columns into one block comment. The
// grouping is idempotent: a merged block re-scans to the same block.
func groupComments(raw []extract.Comment) []extract.Comment {
	out := []extract.Comment{}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c.Type != "single_line" {
			out = append(out, c)
			continue
		}

		texts := []string{c.Text}
		end := c.LineEnd
		last := c
		for i+1 < len(raw) {
			next := raw[i+1]
			if next.Type != "single_line" ||
				next.LineStart != last.LineEnd+1 ||
				abs(next.Indentation-last.Indentation) > 2 {
				break
			}
			texts = append(texts, next.Text)
			end = next.LineEnd
			last = next
			i++
		}

		if len(texts) > 1 {
			c.Type = "block"
			c.Text = strings.Join(texts, "\n")
			c.LineEnd = end
		}
		out = append(out, c)
	}

	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
