// Package lang classifies source units into the supported language set.
package lang

import (
	"path/filepath"
	"strings"
)

// Language identifies one supported extraction language.
type Language string

const (
	Python      Language = "python"
	JavaScript  Language = "javascript"
	Unsupported Language = "unsupported"
)

// Auto is the sentinel callers pass to request detection.
const Auto = "auto"

// extensionMap routes well-known file extensions directly, before any
// content inspection.
var extensionMap = map[string]Language{
	".py":  Python,
	".pyw": Python,
	".pyi": Python,
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  JavaScript,
	".tsx": JavaScript,
}

// Supported reports whether an explicitly requested language name is one the
// engine can extract from.
func Supported(name string) bool {
	switch Language(name) {
	case Python, JavaScript:
		return true
	}
	return false
}

// Detect classifies a source unit. The file extension wins when a path is
// given; otherwise lightweight content heuristics decide, and Python is the
// default for ambiguous input. Detect never fails.
func Detect(source, filePath string) Language {
	if filePath != "" {
		ext := strings.ToLower(filepath.Ext(filePath))
		if l, ok := extensionMap[ext]; ok {
			return l
		}
	}
	return detectByContent(source)
}

func detectByContent(source string) Language {
	hasDef := strings.Contains(source, "def ")
	hasPyImport := strings.Contains(source, "import ") || strings.Contains(source, "from ")
	if hasDef && hasPyImport {
		return Python
	}

	hasFunc := strings.Contains(source, "function ") || strings.Contains(source, "=>")
	hasBlockVar := strings.Contains(source, "const ") || strings.Contains(source, "let ") ||
		strings.Contains(source, "var ")
	if hasFunc && hasBlockVar {
		return JavaScript
	}

	return Python
}
