package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/config"
	"github.com/neexbeast/yearcal/internal/locale"
	"github.com/neexbeast/yearcal/internal/params"
	"github.com/neexbeast/yearcal/internal/tui"
)

// settingsFlags are the calendar settings shared by print and tui.
type settingsFlags struct {
	start     string
	country   string
	weekStart string
	lang      string
}

func (s *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.start, "start", "", "First day shown, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&s.country, "country", "", "Country code for public holidays (default: from config)")
	cmd.Flags().StringVar(&s.weekStart, "week-start", "", "First day of the week, 0 (Sunday) to 6 (default: from config)")
	cmd.Flags().StringVar(&s.lang, "lang", "", "Display language: en or fr (default: from $LANG)")
}

// settings resolves the flags through the same param store the web page uses.
func (s *settingsFlags) settings(cfg *config.Config, today time.Time) calendar.Settings {
	p := params.New(map[string]string{
		params.Lang:         string(envLang()),
		params.StartDate:    today.Format(time.DateOnly),
		params.WeekStartsOn: strconv.Itoa(cfg.Defaults.WeekStartsOn),
		params.CountryCode:  cfg.Defaults.Country,
	}, nil)

	for key, value := range map[string]string{
		params.Lang:         s.lang,
		params.StartDate:    s.start,
		params.WeekStartsOn: s.weekStart,
		params.CountryCode:  s.country,
	} {
		if value != "" {
			p.Set(key, value)
		}
	}

	return calendar.SettingsFrom(p, today)
}

// envLang reads a POSIX locale such as fr_FR.UTF-8 from $LANG.
func envLang() locale.Lang {
	tag, _, _ := strings.Cut(os.Getenv("LANG"), ".")
	return locale.Negotiate(strings.ReplaceAll(tag, "_", "-"))
}

func printCmd() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the twelve-month calendar to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(os.Stderr, false)
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
			f := locale.NewFormatter(settings.Lang)
			view := calendar.NewService(b.fetcher).Render(ctx, settings, f)

			_, err = fmt.Fprint(cmd.OutOrStdout(), tui.Render(view, f, tui.DefaultStyles()))
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
