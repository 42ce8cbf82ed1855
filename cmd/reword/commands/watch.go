package commands

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/cmd/reword/opts"
	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/processor"
)

// NewWatchCmd creates a new watch command
func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		include []string
		ignore  []string
	)

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Watch a file tree and reword files as they change",
		Long: `Watch processes the tree once, then keeps running: changed files are
reworded as they are written, and editing the config file re-resolves
the matcher without a restart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := zerolog.Ctx(ctx)

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			resolved, err := opts.Config.Resolve()
			if err != nil {
				return errors.Errorf("resolving config: %w", err)
			}

			newProcessor := func(res *config.Resolved, onlyFile string) *processor.Processor {
				popts := processor.Options{Root: root, Include: include, Ignore: ignore}
				if onlyFile != "" {
					popts.Include = []string{onlyFile}
				}
				return processor.New(res, opts.UserLogger, popts)
			}

			// Initial full pass
			if _, _, err := newProcessor(resolved, "").Run(ctx); err != nil {
				return errors.Errorf("initial pass over %s: %w", root, err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return errors.Errorf("creating watcher: %w", err)
			}
			defer watcher.Close()

			// fsnotify is not recursive; watch every directory under root
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == ".git" {
						return filepath.SkipDir
					}
					return watcher.Add(path)
				}
				return nil
			})
			if err != nil {
				return errors.Errorf("watching %s: %w", root, err)
			}

			absConfig, err := filepath.Abs(opts.ConfigFile)
			if err == nil {
				// Watch the directory so editor rename-and-replace saves are seen
				if werr := watcher.Add(filepath.Dir(absConfig)); werr != nil {
					logger.Warn().Err(werr).Msg("config file not watchable")
				}
			}

			opts.UserLogger.Infof("watching %s", root)

			for {
				select {
				case <-ctx.Done():
					return nil

				case werr, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Warn().Err(werr).Msg("watch error")

				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}

					if abs, err := filepath.Abs(ev.Name); err == nil && abs == absConfig {
						opts.Config = config.LoadOrDefault(ctx, opts.ConfigFile)
						if res, err := opts.Config.Resolve(); err != nil {
							logger.Warn().Err(err).Msg("config change not applied")
						} else {
							resolved = res
							opts.UserLogger.Info("config reloaded")
						}
						continue
					}

					info, err := os.Stat(ev.Name)
					if err != nil {
						continue
					}
					if info.IsDir() {
						if werr := watcher.Add(ev.Name); werr != nil {
							logger.Warn().Err(werr).Str("dir", ev.Name).Msg("new directory not watchable")
						}
						continue
					}

					rel, err := filepath.Rel(root, ev.Name)
					if err != nil {
						continue
					}
					rel = filepath.ToSlash(rel)
					if len(include) > 0 && !matchesAny(include, rel) {
						continue
					}
					if _, _, err := newProcessor(resolved, rel).Run(ctx); err != nil {
						logger.Warn().Err(err).Str("file", rel).Msg("reprocessing failed")
					}
				}
			}
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "doublestar globs selecting files (default **/*)")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "doublestar globs excluding files")

	return cmd
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
