package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/igreja-site/cms-backend/config"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/services"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	title       string
	description string
	slug        string
	jsonOutput  bool
}

type fileReport struct {
	File   string         `json:"file"`
	Title  string         `json:"title"`
	Slug   string         `json:"slug"`
	Report content.Report `json:"report"`
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate HTML post bodies",
		Long: `Validate one or more HTML files as post bodies.

Without --title the first heading of the file is used. Without --slug the
slug is generated from the title, as the admin panel does on save. The
exit code is 1 only when a file has a blocking issue.

Examples:
  postlint check post.html
  postlint check post.html --title "Culto de Domingo" --slug culto-de-domingo
  postlint check estudos/*.html --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Post title (defaults to the first heading)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Post description")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "Post slug (defaults to one generated from the title)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func runCheck(cmd *cobra.Command, files []string, opts checkOptions) error {
	// stores are not used: the command only prepares and validates forms
	authoring := services.NewPostAuthoring(nil, nil, config.SEOThresholds(config.New()))

	reports := make([]fileReport, 0, len(files))
	blocked := false
	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		form := content.ReduceAll(content.NewPostForm(),
			content.SetTitle{Title: titleFor(opts.title, string(body), file)},
			content.SetSlug{Slug: opts.slug},
			content.SetDescription{Description: opts.description},
			content.SetBody{Body: string(body)},
		)
		form = authoring.Prepare(form)
		report := authoring.Validate(form)
		if !report.CanSave() {
			blocked = true
		}
		reports = append(reports, fileReport{File: file, Title: form.Title, Slug: form.Slug, Report: report})
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReport(out, r)
		}
	}

	if blocked {
		return errBlocked
	}
	return nil
}

// titleFor picks the explicit title, else the first heading of the body,
// else the file name.
func titleFor(explicit, body, file string) string {
	if explicit != "" {
		return explicit
	}
	if headings := content.Headings(body); len(headings) > 0 && headings[0].Text != "" {
		return headings[0].Text
	}
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
