package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/variant"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved configuration",
		Long: `Status prints the resolved configuration: the target word, the
replacement, the generated variant spellings, and which call sites are
enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config

			resolved, err := cfg.Resolve()
			if err != nil {
				return errors.Errorf("resolving config: %w", err)
			}

			pterm.DefaultSection.Println("reword configuration")

			state := pterm.Error.WithPrefix(pterm.Prefix{Text: "off"})
			if cfg.Enabled {
				state = pterm.Success.WithPrefix(pterm.Prefix{Text: "on"})
			}
			state.Printfln("%s -> %q", cfg.Word, cfg.Replacement)

			if cfg.MatchVariants {
				pterm.Info.Println("variant matching enabled:")
				for _, v := range variant.Variants(cfg.Decomposer()(cfg.Word)) {
					pterm.Printfln("  • %s", v)
				}
			} else {
				pterm.Info.Println("variant matching disabled (base word only)")
			}

			pterm.Info.Println("call sites:")
			for _, site := range config.CallSites {
				if resolved.EnabledFor(site) {
					pterm.Success.WithPrefix(pterm.Prefix{Text: "✓"}).Println(site)
				} else {
					pterm.Warning.WithPrefix(pterm.Prefix{Text: "-"}).Println(site)
				}
			}

			return nil
		},
	}

	return cmd
}
