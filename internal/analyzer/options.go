package analyzer

import "github.com/mvp-joe/codescope/internal/lang"

// FunctionsOptions configures ExtractFunctions.
type FunctionsOptions struct {
	FilePath           string `json:"file_path,omitempty"`
	Language           string `json:"language,omitempty"`
	ExtractDocstrings  bool   `json:"extract_docstrings"`
	IncludePrivate     bool   `json:"include_private"`
	ComplexityAnalysis bool   `json:"complexity_analysis"`
}

// DefaultFunctionsOptions returns the documented defaults.
func DefaultFunctionsOptions() FunctionsOptions {
	return FunctionsOptions{
		Language:           lang.Auto,
		ExtractDocstrings:  true,
		IncludePrivate:     false,
		ComplexityAnalysis: true,
	}
}

// ClassesOptions configures ExtractClasses.
type ClassesOptions struct {
	FilePath             string `json:"file_path,omitempty"`
	Language             string `json:"language,omitempty"`
	ExtractRelationships bool   `json:"extract_relationships"`
	IncludePrivate       bool   `json:"include_private"`
	AnalyzeInheritance   bool   `json:"analyze_inheritance"`
}

// DefaultClassesOptions returns the documented defaults.
func DefaultClassesOptions() ClassesOptions {
	return ClassesOptions{
		Language:             lang.Auto,
		ExtractRelationships: true,
		IncludePrivate:       false,
		AnalyzeInheritance:   true,
	}
}

// CommentsOptions configures ExtractComments.
type CommentsOptions struct {
	FilePath          string `json:"file_path,omitempty"`
	Language          string `json:"language,omitempty"`
	IncludeDocstrings bool   `json:"include_docstrings"`
	IncludeTodos      bool   `json:"include_todos"`
}

// DefaultCommentsOptions returns the documented defaults.
func DefaultCommentsOptions() CommentsOptions {
	return CommentsOptions{
		Language:          lang.Auto,
		IncludeDocstrings: true,
		IncludeTodos:      true,
	}
}

// SummarizeOptions configures SummarizeCode.
type SummarizeOptions struct {
	FilePath          string `json:"file_path,omitempty"`
	Language          string `json:"language,omitempty"`
	IncludeComplexity bool   `json:"include_complexity"`
	SummaryLength     string `json:"summary_length,omitempty"`
	IncludeTodos      bool   `json:"include_todos"`
}

// DefaultSummarizeOptions returns the documented defaults.
func DefaultSummarizeOptions() SummarizeOptions {
	return SummarizeOptions{
		Language:          lang.Auto,
		IncludeComplexity: true,
		SummaryLength:     "medium",
		IncludeTodos:      true,
	}
}
