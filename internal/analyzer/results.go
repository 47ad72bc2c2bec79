package analyzer

import "github.com/mvp-joe/codescope/internal/extract"

// Metadata is attached to every operation result.
type Metadata struct {
	Language           string   `json:"language"`
	ProcessingTime     float64  `json:"processing_time"` // seconds
	LanguageConfidence string   `json:"language_confidence,omitempty"`
	InheritanceDepth   int      `json:"inheritance_depth,omitempty"`
	Notes              []string `json:"notes,omitempty"`
}

// FunctionsResult is the ExtractFunctions response.
type FunctionsResult struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error,omitempty"`
	Functions []extract.FunctionInfo `json:"functions"`
	Metadata  Metadata               `json:"metadata"`
}

// ClassesResult is the ExtractClasses response.
type ClassesResult struct {
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	Classes       []extract.ClassInfo    `json:"classes"`
	Relationships []extract.Relationship `json:"relationships"`
	Metadata      Metadata               `json:"metadata"`
}

// CommentsResult is the ExtractComments response.
type CommentsResult struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	Comments   []extract.Comment   `json:"comments"`
	Docstrings []extract.Docstring `json:"docstrings"`
	Todos      []extract.Todo      `json:"todos"`
	Metadata   Metadata            `json:"metadata"`
}

// SummarizeResult is the SummarizeCode response.
type SummarizeResult struct {
	Success       bool                       `json:"success"`
	Error         string                     `json:"error,omitempty"`
	ModulePurpose string                     `json:"module_purpose"`
	Structure     extract.Structure          `json:"structure"`
	Statistics    extract.Statistics         `json:"statistics"`
	Summary       string                     `json:"summary"`
	Todos         []extract.Todo             `json:"todos,omitempty"`
	Complexity    *extract.ComplexityMetrics `json:"complexity,omitempty"`
	Metadata      Metadata                   `json:"metadata"`
}
