package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/memkit/config"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	jsonOut    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "memkit",
		Short: "Exercise memkit allocators and containers",
		Long: `memkit drives the fixed pools, overflow allocators and segmented
storage of the memkit library and reports what they did. Settings come from
a TOML file (--config) with flags overriding individual values.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to a TOML config file")
	root.PersistentFlags().BoolVar(&g.jsonOut, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newPoolCmd(g),
		newSegmentsCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// load returns the effective configuration and a logger writing to the
// command's stderr.
func (g *globals) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, nil, err
		}
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
