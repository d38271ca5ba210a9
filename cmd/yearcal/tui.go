package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/locale"
	"github.com/neexbeast/yearcal/internal/tui"
)

func tuiCmd() *cobra.Command {
	var flags settingsFlags
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the calendar interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen belongs to the program; logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}

			cfg, log, err := loadConfig(w, false)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			b, err := openBackends(ctx, cfg, log, false)
			if err != nil {
				return err
			}
			defer b.close()

			settings := flags.settings(cfg, time.Now())
			state := locale.NewState(settings.Lang)
			state.OnChange(func(l locale.Lang) {
				log.Debug("language changed", slog.String("lang", string(l)))
			})

			m := tui.NewModel(calendar.NewService(b.fetcher), state, settings, tui.DefaultStyles())
			defer m.Close()

			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("running tui: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
	return cmd
}
