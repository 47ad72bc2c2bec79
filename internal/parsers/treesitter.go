package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeStartLine returns the 1-indexed start line of a node.
func nodeStartLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// nodeEndLine returns the 1-indexed end line of a node.
func nodeEndLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor prunes the subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByKind finds the first direct child with the given node kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasDescendantOfKind reports whether any node in the subtree has one of the
// given kinds.
func hasDescendantOfKind(node *sitter.Node, kinds ...string) bool {
	found := false
	walkTree(node, func(n *sitter.Node) bool {
		if found {
			return false
		}
		for _, k := range kinds {
			if n.Kind() == k {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// firstErrorNode locates the shallowest ERROR or MISSING node in a tree,
// used to report the offending line of malformed input.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	var errNode *sitter.Node
	walkTree(node, func(n *sitter.Node) bool {
		if errNode != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			errNode = n
			return false
		}
		return n.HasError()
	})
	return errNode
}
