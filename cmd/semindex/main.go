// Command semindex walks a directory, indexes every file in a supported
// language, and prints the assembled indexes as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/config"
	"github.com/termfx/semindex/internal/discover"
	"github.com/termfx/semindex/internal/index"
	"github.com/termfx/semindex/internal/langconfig"

	_ "github.com/termfx/semindex/providers/javascript"
	_ "github.com/termfx/semindex/providers/python"
	_ "github.com/termfx/semindex/providers/rust"
	_ "github.com/termfx/semindex/providers/typescript"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "semindex",
		Short: "Multi-language semantic source indexer",
		Long:  "Walks a directory tree, parses every supported source file, and emits per-file semantic indexes as JSON.",
	}

	var jsonOutput bool
	var includeTests bool

	indexCmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Build semantic indexes for every file under path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			cfg := config.LoadConfig()
			if includeTests {
				cfg.IncludeTests = true
			}
			return runIndex(cmd, root, cfg, jsonOutput)
		},
	}
	indexCmd.Flags().BoolVarP(&jsonOutput, "json", "j", true, "Emit JSON output (default).")
	indexCmd.Flags().BoolVarP(&includeTests, "include-tests", "t", false, "Include files matched by each language's default test-file ignore patterns.")

	rootCmd.AddCommand(indexCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runIndex(cmd *cobra.Command, root string, cfg *config.Config, jsonOutput bool) error {
	ctx := context.Background()
	walker := discover.New(cfg.Workers)

	results, err := walker.Walk(ctx, discover.Scope{
		Path:         root,
		IncludeTests: cfg.IncludeTests,
		MaxDepth:     cfg.MaxDepth,
		MaxFiles:     cfg.MaxFiles,
	})
	if err != nil {
		return fmt.Errorf("semindex: %w", err)
	}

	var indexes []*core.Index
	for r := range results {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "semindex: skipping %s: %v\n", r.Path, r.Error)
			continue
		}
		if r.Info != nil && cfg.MaxFileBytes > 0 && r.Info.Size() > cfg.MaxFileBytes {
			fmt.Fprintf(os.Stderr, "semindex: skipping %s: exceeds max file size\n", r.Path)
			continue
		}
		ix, err := indexFile(r.Path, r.Language)
		if err != nil {
			fmt.Fprintf(os.Stderr, "semindex: %s: %v\n", r.Path, err)
			continue
		}
		indexes = append(indexes, ix)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(indexes)
	}
	return nil
}

func indexFile(path string, lang core.Language) (*core.Index, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	langCfg := langconfig.Get(lang)
	if langCfg == nil {
		return nil, &core.UnsupportedLanguageError{Language: lang}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(langCfg.Grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	return index.BuildIndex(core.ParsedFile{
		FilePath:   path,
		Language:   lang,
		SourceText: string(source),
		Tree:       tree,
	})
}
