package parsers

import (
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/codescope/internal/extract"
	"github.com/mvp-joe/codescope/internal/lang"
)

// PythonExtractor is the full-grammar strategy. It builds a complete
// tree-sitter syntax tree and visits every definition node.
type PythonExtractor struct {
	language *sitter.Language
}

// NewPythonExtractor creates the Python extractor.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{language: sitter.NewLanguage(python.Language())}
}

func (p *PythonExtractor) Language() lang.Language { return lang.Python }

func (p *PythonExtractor) Confidence() string { return ConfidenceFull }

// parse builds the syntax tree and converts grammar errors into a typed
// SyntaxError carrying the offending line. The caller must Close the tree.
func (p *PythonExtractor) parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Line: 1, Msg: "unparseable input"}
	}

	root := tree.RootNode()
	if root.HasError() {
		line := 1
		if errNode := firstErrorNode(root); errNode != nil {
			line = nodeStartLine(errNode)
		}
		tree.Close()
		return nil, &SyntaxError{Line: line, Msg: "invalid python syntax"}
	}

	return tree, nil
}

// ExtractFunctions returns every module-level (and nested) function in
// source order. Methods are left to ExtractClasses.
func (p *PythonExtractor) ExtractFunctions(source string, opts Options) ([]extract.FunctionInfo, []string, error) {
	src := []byte(source)
	tree, err := p.parse(src)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	fns := []extract.FunctionInfo{}
	var notes []string

	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() != "function_definition" || isMethodNode(n) {
			return true
		}

		fn, ferr := p.safeFunction(n, src, opts, false)
		if ferr != nil {
			notes = append(notes, ferr.Error())
			slog.Debug("skipping function node", "line", nodeStartLine(n), "err", ferr)
			return true
		}
		if fn != nil {
			fns = append(fns, *fn)
		}
		return true
	})

	return fns, notes, nil
}

// ExtractClasses returns every class in source order, tracking nesting via
// an explicit class-name stack.
func (p *PythonExtractor) ExtractClasses(source string, opts Options) ([]extract.ClassInfo, []string, error) {
	src := []byte(source)
	tree, err := p.parse(src)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	classes := []extract.ClassInfo{}
	var notes []string
	var idxStack []int

	var visit func(n *sitter.Node)

	handleClass := func(n *sitter.Node, decorators []string) {
		ci, cerr := p.safeClass(n, src, opts, decorators)
		if cerr != nil {
			notes = append(notes, cerr.Error())
			slog.Debug("skipping class node", "line", nodeStartLine(n), "err", cerr)
			return
		}
		if ci == nil {
			return
		}

		if len(idxStack) > 0 {
			parent := &classes[idxStack[len(idxStack)-1]]
			parent.NestedClasses = append(parent.NestedClasses, ci.Name)
			ci.ParentClass = parent.Name
		}

		classes = append(classes, *ci)
		idx := len(classes) - 1

		if body := n.ChildByFieldName("body"); body != nil {
			idxStack = append(idxStack, idx)
			visit(body)
			idxStack = idxStack[:len(idxStack)-1]
		}
	}

	visit = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(uint(i))
			switch child.Kind() {
			case "class_definition":
				handleClass(child, nil)
			case "decorated_definition":
				def := child.ChildByFieldName("definition")
				if def != nil && def.Kind() == "class_definition" {
					handleClass(def, decoratorNames(child, src))
				} else {
					visit(child)
				}
			default:
				visit(child)
			}
		}
	}

	visit(tree.RootNode())
	return classes, notes, nil
}

// ExtractDocstrings collects the module docstring plus the docstring of
// every function, method, and class.
func (p *PythonExtractor) ExtractDocstrings(source string) ([]extract.Docstring, error) {
	src := []byte(source)
	tree, err := p.parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	docs := []extract.Docstring{}

	if doc := p.blockDocstring(root, src, "module", ""); doc != nil {
		docs = append(docs, *doc)
	}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			docType := "function"
			if isMethodNode(n) {
				docType = "method"
			}
			name := nodeText(n.ChildByFieldName("name"), src)
			if body := n.ChildByFieldName("body"); body != nil {
				if doc := p.blockDocstring(body, src, docType, name); doc != nil {
					docs = append(docs, *doc)
				}
			}
		case "class_definition":
			name := nodeText(n.ChildByFieldName("name"), src)
			if body := n.ChildByFieldName("body"); body != nil {
				if doc := p.blockDocstring(body, src, "class", name); doc != nil {
					docs = append(docs, *doc)
				}
			}
		}
		return true
	})

	return docs, nil
}

// safeFunction isolates a single node's extraction: an unexpected failure
// skips the node instead of aborting the traversal.
func (p *PythonExtractor) safeFunction(n *sitter.Node, src []byte, opts Options, isMethod bool) (fn *extract.FunctionInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			fn = nil
			err = fmt.Errorf("internal extraction error at line %d: %v", nodeStartLine(n), r)
		}
	}()
	return p.extractFunction(n, src, opts, isMethod), nil
}

func (p *PythonExtractor) safeClass(n *sitter.Node, src []byte, opts Options, decorators []string) (ci *extract.ClassInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			ci = nil
			err = fmt.Errorf("internal extraction error at line %d: %v", nodeStartLine(n), r)
		}
	}()
	return p.extractClass(n, src, opts, decorators), nil
}

func (p *PythonExtractor) extractFunction(n *sitter.Node, src []byte, opts Options, isMethod bool) *extract.FunctionInfo {
	name := nodeText(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	if !opts.IncludePrivate && extract.IsPrivateName(name) {
		return nil
	}

	decorators := decoratorNames(n.Parent(), src)

	fn := &extract.FunctionInfo{
		Name:       name,
		LineStart:  nodeStartLine(n),
		LineEnd:    nodeEndLine(n),
		Visibility: extract.ClassifyVisibility(name),
		Decorators: decorators,
		IsAsync:    n.Child(0) != nil && n.Child(0).Kind() == "async",
	}

	fn.Parameters = p.extractParameters(n.ChildByFieldName("parameters"), src, isMethod)
	fn.ReturnType = nodeText(n.ChildByFieldName("return_type"), src)
	fn.Signature = buildSignature(name, fn.Parameters, fn.ReturnType)

	body := n.ChildByFieldName("body")
	if body != nil {
		fn.IsGenerator = hasDescendantOfKind(body, "yield")
	}

	if opts.ExtractDocstrings && body != nil {
		docType := "function"
		if isMethod {
			docType = "method"
		}
		fn.Docstring = p.blockDocstring(body, src, docType, name)
	}

	if opts.ComplexityAnalysis {
		fn.Complexity = computeComplexity(n, src)
	}

	if isMethod {
		for _, d := range decorators {
			switch {
			case strings.Contains(d, "staticmethod"):
				fn.IsStatic = true
			case strings.Contains(d, "classmethod"):
				fn.IsClassMethod = true
			case d == "property" || strings.HasSuffix(d, ".setter") || strings.HasSuffix(d, ".getter") || strings.HasSuffix(d, ".deleter"):
				fn.IsProperty = true
			}
			if strings.Contains(d, "abstractmethod") {
				fn.IsAbstract = true
			}
		}
	}

	return fn
}

func (p *PythonExtractor) extractClass(n *sitter.Node, src []byte, opts Options, decorators []string) *extract.ClassInfo {
	name := nodeText(n.ChildByFieldName("name"), src)
	if name == "" {
		return nil
	}
	if !opts.IncludePrivate && extract.IsPrivateName(name) {
		return nil
	}

	ci := &extract.ClassInfo{
		Name:       name,
		LineStart:  nodeStartLine(n),
		LineEnd:    nodeEndLine(n),
		Decorators: decorators,
		Inheritance: extract.Inheritance{
			Parents:    []string{},
			Interfaces: []string{},
			Mixins:     []string{},
		},
		Methods:    []extract.FunctionInfo{},
		Attributes: []extract.Attribute{},
	}

	for _, d := range decorators {
		if strings.Contains(d, "dataclass") || d == "attr.s" || d == "attrs" {
			ci.IsDataclass = true
		}
	}

	p.classifyBases(n.ChildByFieldName("superclasses"), src, ci)

	body := n.ChildByFieldName("body")
	if body == nil {
		return ci
	}

	if opts.ExtractDocstrings {
		ci.Docstring = p.blockDocstring(body, src, "class", name)
	}

	p.extractMethods(body, src, opts, ci)
	p.extractAttributes(body, src, ci)

	for _, m := range ci.Methods {
		if m.IsAbstract {
			ci.IsAbstract = true
		}
	}

	return ci
}

// classifyBases records direct base expressions as unresolved textual names.
// Interface/mixin classification is a naming heuristic, not resolution:
// names ending in Protocol/Interface count as interfaces and names containing
// Mixin as mixins.
func (p *PythonExtractor) classifyBases(args *sitter.Node, src []byte, ci *extract.ClassInfo) {
	if args == nil {
		return
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(uint(i))
		if arg.Kind() == "keyword_argument" {
			// metaclass=ABCMeta marks the class abstract
			if nodeText(arg.ChildByFieldName("name"), src) == "metaclass" &&
				strings.Contains(nodeText(arg.ChildByFieldName("value"), src), "ABCMeta") {
				ci.IsAbstract = true
			}
			continue
		}

		base := nodeText(arg, src)
		if base == "" {
			continue
		}
		if strings.Contains(base, "ABC") {
			ci.IsAbstract = true
		}

		switch {
		case strings.HasSuffix(base, "Protocol") || strings.HasSuffix(base, "Interface"):
			ci.Inheritance.Interfaces = append(ci.Inheritance.Interfaces, base)
		case strings.Contains(base, "Mixin"):
			ci.Inheritance.Mixins = append(ci.Inheritance.Mixins, base)
		default:
			ci.Inheritance.Parents = append(ci.Inheritance.Parents, base)
		}
	}
}

func (p *PythonExtractor) extractMethods(body *sitter.Node, src []byte, opts Options, ci *extract.ClassInfo) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))

		def := child
		if child.Kind() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}
		if def.Kind() != "function_definition" {
			continue
		}

		m, err := p.safeFunction(def, src, opts, true)
		if err != nil {
			slog.Debug("skipping method node", "class", ci.Name, "line", nodeStartLine(def), "err", err)
			continue
		}
		if m != nil {
			ci.Methods = append(ci.Methods, *m)
		}
	}
}

// extractAttributes collects class-body assignments first, then constructor
// self-assignments; on a name collision the class-body declaration wins.
func (p *PythonExtractor) extractAttributes(body *sitter.Node, src []byte, ci *extract.ClassInfo) {
	seen := map[string]bool{}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() != "expression_statement" {
			continue
		}
		assign := findChildByKind(child, "assignment")
		if assign == nil {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}

		attrName := nodeText(left, src)
		if seen[attrName] {
			continue
		}
		seen[attrName] = true

		attr := extract.Attribute{
			Name:       attrName,
			Type:       "Any",
			Visibility: extract.ClassifyVisibility(attrName),
			IsClassVar: true,
			Default:    nodeText(assign.ChildByFieldName("right"), src),
		}
		if t := assign.ChildByFieldName("type"); t != nil {
			attr.Type = nodeText(t, src)
		}
		ci.Attributes = append(ci.Attributes, attr)
	}

	ctor := findConstructor(body, src)
	if ctor == nil {
		return
	}

	walkTree(ctor.ChildByFieldName("body"), func(n *sitter.Node) bool {
		if n.Kind() != "assignment" {
			return true
		}
		left := n.ChildByFieldName("left")
		if left == nil || left.Kind() != "attribute" {
			return true
		}
		if nodeText(left.ChildByFieldName("object"), src) != "self" {
			return true
		}

		attrName := nodeText(left.ChildByFieldName("attribute"), src)
		if attrName == "" || seen[attrName] {
			return true
		}
		seen[attrName] = true

		attr := extract.Attribute{
			Name:       attrName,
			Type:       "Any",
			Visibility: extract.ClassifyVisibility(attrName),
			Default:    nodeText(n.ChildByFieldName("right"), src),
		}
		if t := n.ChildByFieldName("type"); t != nil {
			attr.Type = nodeText(t, src)
		}
		ci.Attributes = append(ci.Attributes, attr)
		return true
	})
}

// blockDocstring returns the docstring of a block when its first statement
// is a bare string literal.
func (p *PythonExtractor) blockDocstring(block *sitter.Node, src []byte, docType, parent string) *extract.Docstring {
	if block == nil || block.NamedChildCount() == 0 {
		return nil
	}

	first := block.NamedChild(0)
	if first.Kind() != "expression_statement" {
		return nil
	}
	str := findChildByKind(first, "string")
	if str == nil {
		return nil
	}

	raw := stripDocstringQuotes(nodeText(str, src))
	return ParseDocstring(raw, docType, parent, nodeStartLine(str))
}

func (p *PythonExtractor) extractParameters(params *sitter.Node, src []byte, skipReceiver bool) []extract.Parameter {
	out := []extract.Parameter{}
	if params == nil {
		return out
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(uint(i))

		var param extract.Parameter
		param.Type = "Any"

		switch child.Kind() {
		case "identifier":
			param.Name = nodeText(child, src)
		case "typed_parameter":
			param.Name = nodeText(child.NamedChild(0), src)
			param.Type = nodeText(child.ChildByFieldName("type"), src)
		case "default_parameter":
			param.Name = nodeText(child.ChildByFieldName("name"), src)
			param.Default = nodeText(child.ChildByFieldName("value"), src)
			param.HasDefault = true
		case "typed_default_parameter":
			param.Name = nodeText(child.ChildByFieldName("name"), src)
			param.Type = nodeText(child.ChildByFieldName("type"), src)
			param.Default = nodeText(child.ChildByFieldName("value"), src)
			param.HasDefault = true
		case "list_splat_pattern":
			param.Name = nodeText(child, src)
		case "dictionary_splat_pattern":
			param.Name = nodeText(child, src)
		default:
			// positional/keyword separators carry no parameter
			continue
		}

		if param.Name == "" {
			continue
		}
		if skipReceiver && len(out) == 0 && (param.Name == "self" || param.Name == "cls") {
			skipReceiver = false
			continue
		}
		out = append(out, param)
	}

	return out
}

// buildSignature joins parameters and appends the return-type arrow.
func buildSignature(name string, params []extract.Parameter, returnType string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Type != "" && p.Type != "Any" {
			s += ": " + p.Type
			if p.HasDefault {
				s += " = " + p.Default
			}
		} else if p.HasDefault {
			s += "=" + p.Default
		}
		parts = append(parts, s)
	}

	sig := name + "(" + strings.Join(parts, ", ") + ")"
	if returnType != "" {
		sig += " -> " + returnType
	}
	return sig
}

// decoratorNames returns the decorator expressions of a decorated_definition
// wrapper, without the leading @.
func decoratorNames(wrapper *sitter.Node, src []byte) []string {
	if wrapper == nil || wrapper.Kind() != "decorated_definition" {
		return nil
	}

	var out []string
	for i := 0; i < int(wrapper.ChildCount()); i++ {
		child := wrapper.Child(uint(i))
		if child.Kind() == "decorator" {
			out = append(out, strings.TrimPrefix(nodeText(child, src), "@"))
		}
	}
	return out
}

// isMethodNode reports whether a function definition sits directly inside a
// class body (possibly behind a decorator wrapper).
func isMethodNode(n *sitter.Node) bool {
	parent := n.Parent()
	if parent != nil && parent.Kind() == "decorated_definition" {
		parent = parent.Parent()
	}
	if parent == nil || parent.Kind() != "block" {
		return false
	}
	gp := parent.Parent()
	return gp != nil && gp.Kind() == "class_definition"
}

// findConstructor locates the __init__ method of a class body.
func findConstructor(body *sitter.Node, src []byte) *sitter.Node {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		def := child
		if child.Kind() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}
		if def.Kind() != "function_definition" {
			continue
		}
		if nodeText(def.ChildByFieldName("name"), src) == "__init__" {
			return def
		}
	}
	return nil
}
