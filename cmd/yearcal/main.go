package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neexbeast/yearcal/internal/config"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "yearcal",
		Short:         "Twelve-month calendar with public holidays",
		Long:          "Render a twelve-month calendar highlighting weekends and public holidays, as a web page, JSON API or in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./yearcal.yaml if present)")

	rootCmd.AddCommand(serveCmd(), printCmd(), tuiCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and builds a logger writing to w, as
// JSON or as text.
func loadConfig(w io.Writer, asJSON bool) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level, _ := cfg.Log.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	return cfg, slog.New(handler), nil
}
