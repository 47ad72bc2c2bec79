package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/codescope/internal/analyzer"
)

// Each tool registration is composable, mirroring the one-registration-
// per-tool layout of the server package this grew out of.

// AddExtractFunctionsTool registers the extract_functions tool.
func AddExtractFunctionsTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"extract_functions",
		mcp.WithDescription("Extract functions from source code with signatures, parameters, docstrings, and complexity metrics."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Raw source text to analyze")),
		mcp.WithString("file_path", mcp.Description("Optional file path used as a language hint")),
		mcp.WithString("language", mcp.Description("Language override: python, javascript, or auto (default)")),
		mcp.WithBoolean("extract_docstrings", mcp.Description("Attach parsed docstrings (default: true)")),
		mcp.WithBoolean("include_private", mcp.Description("Include underscore-prefixed names (default: false)")),
		mcp.WithBoolean("complexity_analysis", mcp.Description("Compute cyclomatic/cognitive complexity (default: true)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		opts := analyzer.DefaultFunctionsOptions()
		opts.FilePath = args.str("file_path", "")
		opts.Language = args.str("language", opts.Language)
		opts.ExtractDocstrings = args.boolean("extract_docstrings", opts.ExtractDocstrings)
		opts.IncludePrivate = args.boolean("include_private", opts.IncludePrivate)
		opts.ComplexityAnalysis = args.boolean("complexity_analysis", opts.ComplexityAnalysis)

		return jsonResult(a.ExtractFunctions(args.source, opts))
	})
}

// AddExtractClassesTool registers the extract_classes tool.
func AddExtractClassesTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"extract_classes",
		mcp.WithDescription("Extract classes with methods, attributes, inheritance relationships, and inheritance depth."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Raw source text to analyze")),
		mcp.WithString("file_path", mcp.Description("Optional file path used as a language hint")),
		mcp.WithString("language", mcp.Description("Language override: python, javascript, or auto (default)")),
		mcp.WithBoolean("extract_relationships", mcp.Description("Emit inheritance edges (default: true)")),
		mcp.WithBoolean("include_private", mcp.Description("Include underscore-prefixed names (default: false)")),
		mcp.WithBoolean("analyze_inheritance", mcp.Description("Compute maximum inheritance depth (default: true)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		opts := analyzer.DefaultClassesOptions()
		opts.FilePath = args.str("file_path", "")
		opts.Language = args.str("language", opts.Language)
		opts.ExtractRelationships = args.boolean("extract_relationships", opts.ExtractRelationships)
		opts.IncludePrivate = args.boolean("include_private", opts.IncludePrivate)
		opts.AnalyzeInheritance = args.boolean("analyze_inheritance", opts.AnalyzeInheritance)

		return jsonResult(a.ExtractClasses(args.source, opts))
	})
}

// AddExtractCommentsTool registers the extract_comments tool.
func AddExtractCommentsTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"extract_comments",
		mcp.WithDescription("Extract comments, docstrings, and TODO/FIXME/NOTE/HACK/BUG markers from source code."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Raw source text to analyze")),
		mcp.WithString("file_path", mcp.Description("Optional file path used as a language hint")),
		mcp.WithString("language", mcp.Description("Language override: python, javascript, or auto (default)")),
		mcp.WithBoolean("include_docstrings", mcp.Description("Include docstrings (default: true)")),
		mcp.WithBoolean("include_todos", mcp.Description("Include TODO markers (default: true)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		opts := analyzer.DefaultCommentsOptions()
		opts.FilePath = args.str("file_path", "")
		opts.Language = args.str("language", opts.Language)
		opts.IncludeDocstrings = args.boolean("include_docstrings", opts.IncludeDocstrings)
		opts.IncludeTodos = args.boolean("include_todos", opts.IncludeTodos)

		return jsonResult(a.ExtractComments(args.source, opts))
	})
}

// AddSummarizeCodeTool registers the summarize_code tool.
func AddSummarizeCodeTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"summarize_code",
		mcp.WithDescription("Summarize a source file: inferred purpose, structure, statistics, and a prose summary."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Raw source text to analyze")),
		mcp.WithString("file_path", mcp.Description("Optional file path used as a language hint")),
		mcp.WithString("language", mcp.Description("Language override: python, javascript, or auto (default)")),
		mcp.WithBoolean("include_complexity", mcp.Description("Include complexity aggregates (default: true)")),
		mcp.WithString("summary_length", mcp.Description("brief, medium (default), or detailed")),
		mcp.WithBoolean("include_todos", mcp.Description("Include TODO markers (default: true)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		opts := analyzer.DefaultSummarizeOptions()
		opts.FilePath = args.str("file_path", "")
		opts.Language = args.str("language", opts.Language)
		opts.IncludeComplexity = args.boolean("include_complexity", opts.IncludeComplexity)
		opts.SummaryLength = args.str("summary_length", opts.SummaryLength)
		opts.IncludeTodos = args.boolean("include_todos", opts.IncludeTodos)

		return jsonResult(a.SummarizeCode(args.source, opts))
	})
}

// toolArgs wraps the raw argument map with typed accessors.
type toolArgs struct {
	source string
	raw    map[string]interface{}
}

func parseArgs(request mcp.CallToolRequest) (*toolArgs, *mcp.CallToolResult) {
	raw, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}

	source, ok := raw["source"].(string)
	if !ok || source == "" {
		return nil, mcp.NewToolResultError("source parameter is required")
	}

	return &toolArgs{source: source, raw: raw}, nil
}

func (a *toolArgs) str(key, fallback string) string {
	if v, ok := a.raw[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (a *toolArgs) boolean(key string, fallback bool) bool {
	if v, ok := a.raw[key].(bool); ok {
		return v
	}
	return fallback
}

// jsonResult marshals an operation result as a text tool result (mcp-go
// convention).
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
