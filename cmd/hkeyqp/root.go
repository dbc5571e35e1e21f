package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"storemy/pkg/config"
	"storemy/pkg/qlog"
)

// rootOptions holds global flags for every subcommand, mirroring the
// teacher's RootOptions/PersistentPreRunE shape.
type rootOptions struct {
	Verbose    bool
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hkeyqp",
		Short: "hkeyqp - hkey-ordered query plan demos",
		Long:  "Runs canned physical query plans against an in-memory group store, exercising the row codec and operator framework.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			qlog.Init(qlog.Config{Level: level})
			cfg, err := config.LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			qlog.Get().Debug("loaded execution config", "max_row_size", cfg.MaxRowSize, "sort_spill_threshold", cfg.SortSpillThreshold)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to an execution config YAML file (optional)")

	cmd.AddCommand(newRunCommand(opts))
	return cmd
}
