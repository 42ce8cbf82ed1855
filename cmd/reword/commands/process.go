package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/processor"
)

// NewProcessCmd creates a new process command
func NewProcessCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		include []string
		ignore  []string
		dryRun  bool
		jobs    int
	)

	cmd := &cobra.Command{
		Use:   "process [root]",
		Short: "Apply the replacement across a file tree",
		Long: `Process walks a directory, selects files with doublestar globs, and
applies the configured replacement to each one. With --dry-run nothing
is written; a diff is printed per file instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resolved, err := opts.Config.Resolve()
			if err != nil {
				return errors.Errorf("resolving config: %w", err)
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			p := processor.New(resolved, opts.UserLogger, processor.Options{
				Root:    root,
				Include: include,
				Ignore:  ignore,
				DryRun:  dryRun,
				Jobs:    jobs,
			})

			files, summary, err := p.Run(ctx)
			if err != nil {
				return errors.Errorf("processing %s: %w", root, err)
			}

			if dryRun {
				for _, f := range files {
					if f.Diff == "" {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n%s\n", f.Path, f.Diff)
				}
			}

			opts.UserLogger.Successf("%d files, %d modified, %d replacements",
				summary.Total, summary.Modified, summary.Replacements)
			if summary.Errors > 0 {
				return errors.Errorf("%d files failed", summary.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "doublestar globs selecting files (default **/*)")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "doublestar globs excluding files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print diffs instead of writing files")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent workers (default number of CPUs)")

	return cmd
}
