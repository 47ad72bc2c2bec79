package extract

// Package extract defines the record shapes shared by every extraction
// strategy. Both the full-grammar Python path and the heuristic JavaScript
// path produce these types, so callers never branch on which strategy ran.

// Visibility classifies an identifier by its underscore pattern.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityMagic     Visibility = "magic"
)

// Parameter is a single function parameter.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	HasDefault  bool   `json:"has_default"`
	Description string `json:"description,omitempty"`
}

// ComplexityMetrics holds the per-function complexity scores.
type ComplexityMetrics struct {
	Cyclomatic  int `json:"cyclomatic"`
	Cognitive   int `json:"cognitive"`
	LinesOfCode int `json:"lines_of_code"`
}

// FunctionInfo describes one extracted function or method.
type FunctionInfo struct {
	Name          string             `json:"name"`
	Signature     string             `json:"signature"`
	LineStart     int                `json:"line_start"`
	LineEnd       int                `json:"line_end"`
	IsAsync       bool               `json:"is_async"`
	IsGenerator   bool               `json:"is_generator"`
	Parameters    []Parameter        `json:"parameters"`
	ReturnType    string             `json:"return_type,omitempty"`
	Decorators    []string           `json:"decorators,omitempty"`
	Visibility    Visibility         `json:"visibility"`
	Docstring     *Docstring         `json:"docstring,omitempty"`
	Complexity    *ComplexityMetrics `json:"complexity,omitempty"`
	IsStatic      bool               `json:"is_static,omitempty"`
	IsClassMethod bool               `json:"is_class_method,omitempty"`
	IsProperty    bool               `json:"is_property,omitempty"`
	IsAbstract    bool               `json:"is_abstract,omitempty"`
}

// Inheritance records the declared bases of a class, split by kind.
// Base names are unresolved source text; no cross-file resolution happens.
type Inheritance struct {
	Parents    []string `json:"parents"`
	Interfaces []string `json:"interfaces"`
	Mixins     []string `json:"mixins"`
}

// Attribute is a class attribute collected from the class body or from
// assignments to the receiver inside the constructor.
type Attribute struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Visibility Visibility `json:"visibility"`
	IsClassVar bool       `json:"is_class_var"`
	Default    string     `json:"default,omitempty"`
}

// ClassInfo describes one extracted class.
type ClassInfo struct {
	Name          string         `json:"name"`
	LineStart     int            `json:"line_start"`
	LineEnd       int            `json:"line_end"`
	Inheritance   Inheritance    `json:"inheritance"`
	Methods       []FunctionInfo `json:"methods"`
	Attributes    []Attribute    `json:"attributes"`
	Docstring     *Docstring     `json:"docstring,omitempty"`
	Decorators    []string       `json:"decorators,omitempty"`
	IsAbstract    bool           `json:"is_abstract"`
	IsDataclass   bool           `json:"is_dataclass"`
	NestedClasses []string       `json:"nested_classes,omitempty"`
	ParentClass   string         `json:"parent_class,omitempty"`
}

// Relationship is a derived edge between two class names.
type Relationship struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
}

// DocstringArg describes one documented parameter.
type DocstringArg struct {
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}

// DocstringRaise describes one documented exception.
type DocstringRaise struct {
	Exception   string `json:"exception"`
	Description string `json:"description,omitempty"`
}

// Docstring is a structured doc-comment attached to a module, class,
// function, or method.
type Docstring struct {
	Raw         string                  `json:"raw"`
	Type        string                  `json:"type"` // module, class, function, method
	Parent      string                  `json:"parent,omitempty"`
	Line        int                     `json:"line"`
	Summary     string                  `json:"summary"`
	Description string                  `json:"description,omitempty"`
	Args        map[string]DocstringArg `json:"args,omitempty"`
	Returns     string                  `json:"returns,omitempty"`
	Raises      []DocstringRaise        `json:"raises,omitempty"`
}

// Comment is a non-doc comment found in the source.
type Comment struct {
	Text        string `json:"text"`
	Type        string `json:"type"` // single_line, end_of_line, block
	LineStart   int    `json:"line_start"`
	LineEnd     int    `json:"line_end,omitempty"`
	Context     string `json:"context"` // module, function, method, class, control_flow
	Indentation int    `json:"indentation"`
}

// Todo is a TODO-style marker found inside a comment.
type Todo struct {
	Text     string `json:"text"`
	Marker   string `json:"marker"` // TODO, FIXME, NOTE, HACK, BUG
	Line     int    `json:"line"`
	Context  string `json:"context,omitempty"`
	Priority string `json:"priority"` // high, medium, low
}

// Structure summarizes the named items of a module.
type Structure struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
	Imports   []string `json:"imports"`
	Globals   []string `json:"globals"`
	Constants []string `json:"constants"`
}

// Statistics holds line-count statistics for a module.
type Statistics struct {
	TotalLines   int     `json:"total_lines"`
	CodeLines    int     `json:"code_lines"`
	CommentLines int     `json:"comment_lines"`
	BlankLines   int     `json:"blank_lines"`
	DocRatio     float64 `json:"doc_ratio"`
}

// Summary is the synthesized description of one source unit.
type Summary struct {
	ModulePurpose string             `json:"module_purpose"`
	Structure     Structure          `json:"structure"`
	Statistics    Statistics         `json:"statistics"`
	Text          string             `json:"text"`
	Todos         []Todo             `json:"todos,omitempty"`
	Complexity    *ComplexityMetrics `json:"complexity,omitempty"`
}
