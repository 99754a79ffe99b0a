package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThe short formats are meant for status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull,
		"Display format: "+strings.Join(prayer.FormatModes(), ", ")+", or a Go template over .Name .ShortName .Key .Time .Date .Remaining .Hours .Minutes .Seconds")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)
	if err := prayer.ValidateFormat(flagFormat); err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		cfg.Prayers = flagPrayers
	}

	s, err := newSession(cfg, time.Now())
	if err != nil {
		return err
	}
	now := s.localTime(time.Now())
	out := cmd.OutOrStdout()

	next, err := prayer.Upcoming(s.strategy, s.location.Geo, now, s.events)
	if err != nil {
		// Tomorrow may be unavailable (remote source offline): show the
		// last prayer with a "done" indicator rather than crashing the
		// status bar.
		prayers, dayErr := s.day(now)
		if dayErr != nil || len(prayers) == 0 {
			return err
		}
		logger.Warn().Err(err).Msg("could not determine next prayer")
		fmt.Fprintf(out, "%s --:--", prayers[len(prayers)-1].Name())
		return nil
	}

	fmt.Fprint(out, prayer.FormatOutput(*next, now, flagFormat, s.layout))
	return nil
}
