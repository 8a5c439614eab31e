package commands

import (
	"fmt"
	"strings"

	"github.com/igreja-site/cms-backend/content"
	"github.com/spf13/cobra"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug TEXT...",
		Short: "Print the slug generated for a title",
		Long: `Print the URL slug the admin panel would generate for a title.
Several words are joined with spaces, so quoting is optional.

Examples:
  postlint slug "Culto de Ação de Graças"   # culto-de-acao-de-gracas`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := content.GenerateSlug(strings.Join(args, " "))
			if slug == "" {
				return fmt.Errorf("no slug can be generated from %q", strings.Join(args, " "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}
}
