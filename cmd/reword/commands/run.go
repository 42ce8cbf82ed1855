package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/detect"
	"github.com/walteh/reword/pkg/engine"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var replacement string

	cmd := &cobra.Command{
		Use:   "run [text...]",
		Short: "Replace the target word in text from arguments or stdin",
		Long: `Run applies the configured replacement to the given text and prints
the result. With no arguments the text is read from stdin. URLs, file
paths, inline code, and fenced code pass through untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config
			if cmd.Flags().Changed("replacement") {
				cfg.Replacement = replacement
			}

			resolved, err := cfg.Resolve()
			if err != nil {
				return errors.Errorf("resolving config: %w", err)
			}

			var text string
			if len(args) > 0 {
				text = strings.Join(args, " ")
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}

			eng := engine.New(engine.Options{
				Detector: detect.New(detect.Options{AbsolutePaths: resolved.AbsolutePaths()}),
			})

			fmt.Fprint(cmd.OutOrStdout(), eng.Replace(text, resolved.Replacement, resolved.Matcher))
			return nil
		},
	}

	cmd.Flags().StringVarP(&replacement, "replacement", "r", "", "override the configured replacement string")

	return cmd
}
