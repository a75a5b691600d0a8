package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/papertab"
	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/tables"
	"github.com/tsawler/papertab/text"
)

// settings is the effective configuration of one invocation. Precedence,
// highest first: flags, PAPERTAB_* environment variables, config file,
// defaults.
type settings struct {
	Tables       tables.Config             `mapstructure:"tables" yaml:"tables" toml:"tables"`
	Lines        text.LineConfig           `mapstructure:"lines" yaml:"lines" toml:"lines"`
	StripRunning bool                      `mapstructure:"strip_running" yaml:"strip_running" toml:"strip_running"`
	Running      layout.HeaderFooterConfig `mapstructure:"running" yaml:"running" toml:"running"`
	Workers      int                       `mapstructure:"workers" yaml:"workers" toml:"workers"`
	Log          logSettings               `mapstructure:"log" yaml:"log" toml:"log"`
}

type logSettings struct {
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	File  string `mapstructure:"file" yaml:"file" toml:"file"`
}

func defaultSettings() settings {
	corpus := papertab.DefaultCorpusOptions()
	return settings{
		Tables:       corpus.Config,
		Lines:        corpus.Lines,
		StripRunning: corpus.StripRunning,
		Running:      corpus.Running,
		Workers:      corpus.Workers,
		Log:          logSettings{Level: "info"},
	}
}

// corpusOptions converts settings to the library's corpus options
func (s settings) corpusOptions() papertab.CorpusOptions {
	return papertab.CorpusOptions{
		Config:       s.Tables,
		Lines:        s.Lines,
		StripRunning: s.StripRunning,
		Running:      s.Running,
		Workers:      s.Workers,
	}
}

// newViper returns a viper instance that knows every settings key, so that
// environment variables are honoured for keys absent from the config file.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("PAPERTAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults, err := flatten(defaultSettings())
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetDefault(k, defaults[k])
	}
	return v, nil
}

// flatten maps every leaf of s to its dotted key, e.g. tables.layout.tolerance
func flatten(s settings) (map[string]any, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}

	out := make(map[string]any)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]any); ok {
				walk(key, sub)
				continue
			}
			out[key] = val
		}
	}
	walk("", tree)
	return out, nil
}

// readConfig loads the config file and returns validated settings. With an
// empty path, papertab.yaml or papertab.toml is looked up in the working
// directory and the user config directory; finding none is not an error.
func readConfig(v *viper.Viper, path string) (settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("papertab")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "papertab"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := s.Tables.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage papertab configuration.

Settings are read from papertab.yaml or papertab.toml in the working
directory or the user config directory, or from the file named by --config.
Every key can be overridden with a PAPERTAB_ environment variable, dots
replaced by underscores:

  PAPERTAB_TABLES_MERGE_GAP=5
  PAPERTAB_TABLES_LAYOUT_TOLERANCE=1.5

Examples:
  papertab config init
  papertab config show`,
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default TOML config file",
		Args:  cobra.MaximumNArgs(1),
		// Runs without reading any existing config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "papertab.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating config: %w", err)
			}
			defer f.Close()

			if err := toml.NewEncoder(f).Encode(defaultSettings()); err != nil {
				return fmt.Errorf("encoding TOML: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(app.settings); err != nil {
				return fmt.Errorf("encoding YAML: %w", err)
			}
			return enc.Close()
		},
	}
}
