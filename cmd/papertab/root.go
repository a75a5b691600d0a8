package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by the commands of one invocation
type app struct {
	v        *viper.Viper
	config   string
	settings settings
	logger   *slog.Logger
	logFile  io.Closer
}

// flagKeys maps viper keys to the persistent flags that override them
var flagKeys = map[string]string{
	"log.level":                 "log-level",
	"log.file":                  "log-file",
	"workers":                   "workers",
	"strip_running":             "strip-running",
	"tables.merge_gap":          "merge-gap",
	"tables.noise_tolerance":    "noise-tolerance",
	"tables.validity_threshold": "validity-threshold",
	"tables.min_rows":           "min-rows",
	"tables.min_columns":        "min-columns",
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cmd := &cobra.Command{
		Use:          "papertab",
		Short:        "Find and score tables in academic documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.config, "config", "", "config file (YAML or TOML)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")
	flags.Int("workers", 0, "documents processed concurrently (default: one per CPU)")
	flags.Bool("strip-running", true, "remove running headers and footers before detection")
	flags.Int("merge-gap", 0, "maximum lines between table fragments that may merge")
	flags.Int("noise-tolerance", 0, "stray lines tolerated inside a table")
	flags.Float64("validity-threshold", 0, "minimum score (0-1) for a valid table")
	flags.Int("min-rows", 0, "minimum rows of a table")
	flags.Int("min-columns", 0, "minimum columns of a table")

	cmd.AddCommand(
		newDetectCmd(a),
		newStatsCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// setup builds the viper instance, reads the configuration and opens the
// logger
func (a *app) setup(cmd *cobra.Command) error {
	v, err := newViper()
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	a.v = v

	s, err := readConfig(a.v, a.config)
	if err != nil {
		return err
	}
	a.settings = s

	logger, closer, err := newLogger(s.Log.Level, s.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger, a.logFile = logger, closer

	a.logger.Debug("configuration loaded", "config", a.v.ConfigFileUsed(), "workers", s.Workers)
	return nil
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
