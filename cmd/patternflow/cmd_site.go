package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"patternflow/internal/site"
)

var siteOutput string

// siteCmd exports the static HTML site
var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Export the catalog as a static HTML site",
	Long: `Writes index.html plus one page per pattern, with Mermaid diagrams,
highlighted code tabs and previous/next links.

Example:
  patternflow site -o ./public --theme dark`,
	Args: cobra.NoArgs,
	RunE: runSite,
}

func runSite(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	cat, idx, err := loadCatalog()
	if err != nil {
		return err
	}

	dir := siteOutput
	if dir == "" {
		dir = cfg.Site.OutputDir
	}
	// A browser has no terminal background to detect; auto means light.
	dark := cfg.IsDark(false)
	theme := "light"
	if dark {
		theme = "dark"
	}

	gen := &site.Generator{
		Catalog:     cat,
		Index:       idx,
		OutputDir:   dir,
		Title:       cfg.Site.Title,
		Theme:       theme,
		Style:       cfg.HighlightStyle(dark),
		MermaidURL:  cfg.Site.MermaidURL,
		Concurrency: cfg.Site.Concurrency,
	}
	logger.Info("Generating site", zap.String("dir", dir), zap.String("theme", theme))
	n, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d pages to %s\n", n, dir)
	return nil
}
