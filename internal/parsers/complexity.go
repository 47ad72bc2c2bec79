package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/codescope/internal/extract"
)

// computeComplexity scores a single function-like subtree.
//
// Cyclomatic complexity starts at 1 and adds 1 per conditional branch
// (if/elif, while, for, except clause) and 1 per boolean operator node
// (tree-sitter nests chained and/or, so a chain of n operands contributes
// n-1 nodes).
//
// Cognitive complexity starts at 0. Each if/elif/while/for adds
// 1 + nesting and deepens nesting for its body; an except clause adds
// 1 + nesting without deepening; a boolean operator adds 1 with no
// nesting weight.
func computeComplexity(node *sitter.Node, source []byte) *extract.ComplexityMetrics {
	m := &extract.ComplexityMetrics{Cyclomatic: 1}

	scoreNode(node, source, 0, m)
	m.LinesOfCode = countCodeLines(nodeText(node, source))

	return m
}

func scoreNode(node *sitter.Node, source []byte, nesting int, m *extract.ComplexityMetrics) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))

		switch child.Kind() {
		case "if_statement", "elif_clause", "while_statement", "for_statement":
			m.Cyclomatic++
			m.Cognitive += 1 + nesting
			scoreNode(child, source, nesting+1, m)
		case "except_clause":
			m.Cyclomatic++
			m.Cognitive += 1 + nesting
			scoreNode(child, source, nesting, m)
		case "boolean_operator":
			m.Cyclomatic++
			m.Cognitive++
			scoreNode(child, source, nesting, m)
		default:
			scoreNode(child, source, nesting, m)
		}
	}
}

// countCodeLines counts non-blank lines that are not comment-only.
func countCodeLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	return count
}
