package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"patternflow/internal/diagram"
	"patternflow/internal/highlight"
	"patternflow/internal/present"
)

var (
	showSection    string
	showRawDiagram bool
	showColor      bool
)

var showSections = []string{"header", "diagram", "roles", "code", "all"}

// showCmd prints one pattern
var showCmd = &cobra.Command{
	Use:   "show [pattern-id]",
	Short: "Print one pattern: header, diagram, participants and code",
	Long: `Prints the same view the browser shows for a pattern, as plain text.

Examples:
  patternflow show observer
  patternflow show builder --lang java --section code
  patternflow show proxy --section diagram --raw-diagram`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	section := strings.ToLower(showSection)
	valid := false
	for _, s := range showSections {
		valid = valid || s == section
	}
	if !valid {
		return fmt.Errorf("unknown section %q (valid: %s)", showSection, strings.Join(showSections, ", "))
	}

	cat, idx, err := loadCatalog()
	if err != nil {
		return err
	}
	ctrl := newController(cat, idx, nil)
	if err := ctrl.SelectPattern(args[0]); err != nil {
		return err
	}

	v, err := present.Build(cat, idx, ctrl.State())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	want := func(s string) bool { return section == "all" || section == s }

	if want("header") {
		writeHeader(out, v)
	}
	if want("diagram") {
		writeDiagram(cmd, out, v)
	}
	if want("roles") {
		writeRoles(out, v)
	}
	if want("code") {
		writeCode(out, v)
	}
	logger.Debug("Showed pattern", zap.String("id", v.Header.ID), zap.String("section", section))
	return nil
}

func writeHeader(out io.Writer, v present.View) {
	fmt.Fprintf(out, "%s  [%s]\n", v.Header.Name, v.Header.Category)
	fmt.Fprintf(out, "%s\n\n", v.Header.Tagline)
	fmt.Fprintf(out, "%s\n\n", v.Header.Description)
}

func writeDiagram(cmd *cobra.Command, out io.Writer, v present.View) {
	fmt.Fprintln(out, "Structure")
	if showRawDiagram {
		fmt.Fprintf(out, "%s\n\n", v.Diagram)
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	text, err := diagram.Render(ctx, v.Diagram, diagram.Options{
		ASCII:       cfg.Diagram.ASCII,
		MaxBoxWidth: cfg.Diagram.MaxBoxWidth,
	})
	if err != nil {
		logger.Warn("Diagram fell back to source", zap.String("id", v.Header.ID), zap.Error(err))
		fmt.Fprintf(out, "%s\n(diagram could not be drawn; showing source)\n\n", v.Diagram)
		return
	}
	fmt.Fprintf(out, "%s\n\n", text)
}

func writeRoles(out io.Writer, v present.View) {
	fmt.Fprintln(out, "Participants")
	for _, r := range v.Roles {
		fmt.Fprintf(out, "  %s %s\n      %s\n", present.Icon(r.Icon), r.Title, r.Description)
	}
	fmt.Fprintln(out)
}

func writeCode(out io.Writer, v present.View) {
	fmt.Fprintf(out, "Code (%s)\n", v.Language.Label())
	code := v.Code
	if showColor {
		dark := cfg.IsDark(false)
		code = highlight.New(cfg.HighlightStyle(dark), cfg.Highlight.Formatter).Highlight(code, v.Language)
	}
	fmt.Fprintln(out, strings.TrimRight(code, "\n"))
}
