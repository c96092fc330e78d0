package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"patternflow/internal/catalog"
)

var listCategory string

// listCmd prints the catalog index
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List patterns grouped by category",
	Long: `Prints every pattern id and name, grouped by category in catalog order.

Example:
  patternflow list
  patternflow list --category structural`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cat, idx, err := loadCatalog()
	if err != nil {
		return err
	}

	categories := idx.Categories()
	if listCategory != "" {
		c, err := catalog.ParseCategory(listCategory)
		if err != nil {
			return err
		}
		categories = []catalog.Category{c}
	}

	width := 0
	for _, s := range idx.FlatOrdered() {
		width = max(width, len(s.ID))
	}

	out := cmd.OutOrStdout()
	for i, c := range categories {
		if i > 0 {
			fmt.Fprintln(out)
		}
		group := idx.Group(c)
		fmt.Fprintf(out, "%s (%d)\n", strings.ToUpper(string(c)), len(group))
		for _, s := range group {
			marker := " "
			if s.ID == cat.DefaultID() {
				marker = "*"
			}
			fmt.Fprintf(out, " %s %-*s  %s\n", marker, width, s.ID, s.Name)
		}
	}
	logger.Debug("Listed patterns", zap.Int("categories", len(categories)))
	return nil
}
