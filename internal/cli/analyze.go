package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/codescope/internal/analyzer"
)

var analyzeMode string

// analyzeCmd extracts functions, classes, or comments from one file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Extract functions, classes, or comments from a source file",
	Long: `Analyze a source file and print the extraction result as JSON.

The mode flag selects what to extract:
  functions  function signatures, parameters, docstrings, complexity
  classes    classes, methods, attributes, inheritance relationships
  comments   comments, docstrings, and TODO markers

Example:
  codescope analyze --mode functions app.py`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "functions", "what to extract: functions, classes, or comments")
	analyzeCmd.Flags().Bool("include-private", false, "include underscore-prefixed names")
	analyzeCmd.Flags().String("language", "auto", "language override: python, javascript, or auto")

	viper.BindPFlag("include_private", analyzeCmd.Flags().Lookup("include-private"))
	viper.BindPFlag("language", analyzeCmd.Flags().Lookup("language"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	a := analyzer.New()
	includePrivate := viper.GetBool("include_private")
	language := viper.GetString("language")

	var result interface{}
	switch analyzeMode {
	case "functions":
		opts := analyzer.DefaultFunctionsOptions()
		opts.FilePath = args[0]
		opts.Language = language
		opts.IncludePrivate = includePrivate
		result = a.ExtractFunctions(string(source), opts)
	case "classes":
		opts := analyzer.DefaultClassesOptions()
		opts.FilePath = args[0]
		opts.Language = language
		opts.IncludePrivate = includePrivate
		result = a.ExtractClasses(string(source), opts)
	case "comments":
		opts := analyzer.DefaultCommentsOptions()
		opts.FilePath = args[0]
		opts.Language = language
		result = a.ExtractComments(string(source), opts)
	default:
		return fmt.Errorf("unknown mode %q (want functions, classes, or comments)", analyzeMode)
	}

	return printJSON(result)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
