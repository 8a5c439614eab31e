package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errBlocked makes the process exit 1 after a check found a post that could
// not be saved. Advisory findings never do.
var errBlocked = errors.New("blocking issues found")

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "postlint",
		Short: "Check blog posts and studies before publishing",
		Long: `postlint runs the same checks as the admin panel on HTML files:
slug format, title and description length, heading structure and
word count.

Only an invalid slug is blocking; every other finding is advisory.

Examples:
  postlint check post.html --title "Culto de Ação de Graças"
  postlint check estudos/*.html --json
  postlint slug "Culto de Ação de Graças"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSlugCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errBlocked) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
