package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/reword/cmd/reword/commands"
	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd creates the root command with all subcommands attached
func newRootCmd() *cobra.Command {
	root := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "reword",
		Short: "Safety-aware word substitution for text and files",
		Long: `reword replaces a target word (and optionally its case/separator
variants) in free-form text while leaving URLs, file paths, inline code,
and fenced code untouched.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			ctx := cmd.Context()
			root.ConfigFile = configFile
			root.Config = config.LoadOrDefault(ctx, configFile)
			root.UserLogger = log.New(os.Stdout, zerolog.GlobalLevel())
			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(commands.NewRunCmd(root))
	cmd.AddCommand(commands.NewProcessCmd(root))
	cmd.AddCommand(commands.NewStatusCmd(root))
	cmd.AddCommand(commands.NewWatchCmd(root))

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".reword.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}
