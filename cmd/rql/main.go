// Command rql is a thin CLI front end over the internal/search library,
// grounded in the teacher's cmd/morfx/demo/cmd Cobra wiring.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/rql/internal/config"
	"github.com/oxhq/rql/internal/model"
	"github.com/oxhq/rql/internal/render"
	"github.com/oxhq/rql/internal/search"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// ranRunE marks whether control ever reached a command's RunE, as
// opposed to failing during cobra's own arg-count/flag-parse
// validation. Both are usage errors (exit 2); everything that fails
// once RunE is running is a query- or run-time error (exit 1) unless
// it is itself one of the parse/validation sentinels below.
var ranRunE bool

func main() {
	_ = godotenv.Load()

	root := newRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		if isUsageError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// isUsageError reports whether err is a usage-class mistake: a
// malformed query or unknown predicate that wraps one of the sentinels
// below, or a cobra arg-count/flag-parse failure that never reached a
// command's RunE. Query syntax errors that wrap none of these
// sentinels (an unterminated quote, an unexpected character or token)
// are not recognised here and exit 1. Matches spec.md §7's "1 on
// first fatal error, 2 on usage errors" split.
func isUsageError(err error) bool {
	if !ranRunE {
		return true
	}
	for _, sentinel := range []error{
		model.ErrEmptyQuery,
		model.ErrTrailingOperator,
		model.ErrMissingOperator,
		model.ErrUnbalancedParen,
		model.ErrMissingValue,
		model.ErrUnknownPredicate,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rql",
		Short: "rql searches files by metadata, content, and code structure",
		Long:  "rql evaluates a boolean query over filesystem metadata, raw text, and tree-sitter syntax trees to find matching files or precise hunks within them.",
	}
	root.AddCommand(newSearchCmd(), newLangCmd(), newPresetCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var (
		root         string
		presets      []string
		noIgnore     bool
		hidden       bool
		maxDepth     int
		skipErrors   bool
		mode         string
		contextLines int
		lineNumbers  bool
		sqlDialect   string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run an RQL query against a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranRunE = true
			renderMode, err := parseMode(mode)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			opts := search.Options{
				Root:       root,
				Presets:    presets,
				NoIgnore:   noIgnore,
				Hidden:     hidden,
				MaxDepth:   maxDepth,
				SkipErrors: skipErrors,
				SQLDialect: sqlDialect,
				PresetResolver: func(name string) (string, bool) {
					q, ok := cfg.Presets[name]
					return q, ok
				},
			}

			it, err := search.SearchIter(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			go drainDiagnostics(it)

			var results []search.SearchResult
			for {
				r, ok := it.Next()
				if !ok {
					break
				}
				results = append(results, r)
			}
			if err := it.Err(); err != nil {
				return err
			}

			return render.Write(cmd.OutOrStdout(), results, render.Options{
				Mode:         renderMode,
				ContextLines: contextLines,
				LineNumbers:  lineNumbers,
			})
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory to search under")
	cmd.Flags().StringSliceVar(&presets, "preset", nil, "named query preset(s) to AND in, resolved from config")
	cmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "disable .gitignore/.rqlignore filtering")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum directory recursion depth, 0 means the default cap of 100")
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "report per-file errors as warnings instead of aborting")
	cmd.Flags().StringVar(&mode, "format", "paths", "output format: paths, matches, snippet, full, summary")
	cmd.Flags().IntVar(&contextLines, "context", 2, "lines of context around each match in snippet format")
	cmd.Flags().BoolVar(&lineNumbers, "line-numbers", false, "prefix printed source lines with their line number")
	cmd.Flags().StringVar(&sqlDialect, "sql-dialect", "", "SQL grammar variant for the sql profile family (generic, postgres, mysql, sqlite); currently a no-op, no SQL profile is registered")

	return cmd
}

func parseMode(s string) (render.Mode, error) {
	switch s {
	case "paths":
		return render.ModePaths, nil
	case "matches":
		return render.ModeMatches, nil
	case "snippet":
		return render.ModeSnippet, nil
	case "full":
		return render.ModeFull, nil
	case "summary":
		return render.ModeSummary, nil
	default:
		return 0, fmt.Errorf("unknown --format %q (want paths, matches, snippet, full, summary)", s)
	}
}

func drainDiagnostics(it *search.ResultIter) {
	for d := range it.Diagnostics() {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", color.YellowString("warning:"), d.Path, d.Message)
	}
}

func newLangCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang [name-or-extension]",
		Short: "List supported languages, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranRunE = true
			if len(args) == 0 {
				for _, info := range search.ListLanguages() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%v)\n", bold(info.Name), info.Extensions)
				}
				return nil
			}
			info, err := search.DescribeLanguage(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nExtensions: %v\nSupported predicates: %v\n", bold(info.Name), info.Extensions, info.SupportedKeys)
			return nil
		},
	}
	return cmd
}

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named query presets stored in the global config",
	}
	cmd.AddCommand(newPresetListCmd(), newPresetSetCmd(), newPresetRemoveCmd())
	return cmd
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ranRunE = true
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.Presets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no presets configured")
				return nil
			}
			for name, query := range cfg.Presets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", bold(name), query)
			}
			return nil
		},
	}
}

func newPresetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <query>",
		Short: "Add or update a preset in the global config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranRunE = true
			if _, err := search.ParseQuery(args[1]); err != nil {
				return fmt.Errorf("invalid preset query: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Presets == nil {
				cfg.Presets = map[string]string{}
			}
			cfg.Presets[args[0]] = args[1]
			return config.Save(cfg)
		},
	}
}

func newPresetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a preset from the global config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranRunE = true
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			delete(cfg.Presets, args[0])
			return config.Save(cfg)
		},
	}
}
