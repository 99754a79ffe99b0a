package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

func runToday(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)

	s, err := newSession(cfg, time.Now())
	if err != nil {
		return err
	}
	now := s.localTime(time.Now())

	days, err := s.days(now, 1)
	if err != nil {
		return err
	}
	today := days[0]
	prayers := today.Prayers

	// Find current and next prayers.
	current := prayer.CurrentPrayer(prayers, now)
	next := prayer.NextPrayer(prayers, now)

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, prayers, current, next, now)
	}

	printTodayRich(out, s, today, current, next, now)
	return nil
}

// zoneLabel names the timezone the schedule is shown in.
func zoneLabel(s *session, now time.Time) string {
	name, _ := now.Zone()
	if s.location.Timezone != "" {
		return fmt.Sprintf("%s (%s)", s.location.Timezone, name)
	}
	return name
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *session, today dayData, current, next *prayer.Prayer, now time.Time) {
	prayers := today.Prayers

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.location.label())
	fmt.Fprintf(w, "  %s\n", zoneLabel(s, now))
	fmt.Fprintf(w, "  %s\n", now.Format("Mon 02 Jan 2006"))
	fmt.Fprintf(w, "  %s\n", display.Gray(describeMethod(s)))
	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name()) > maxNameLen {
			maxNameLen = len(p.Name())
		}
	}

	anyApprox := false
	for _, p := range prayers {
		timeStr := p.Time.Format(s.layout)
		if today.Approx[p.Event] {
			timeStr = display.Approx(timeStr)
			anyApprox = true
		}
		line := fmt.Sprintf("  %s  %s", padRight(p.Name(), maxNameLen), timeStr)

		switch {
		case current != nil && p.Event == current.Event:
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && p.Event == next.Event:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Fprintln(w, display.Accent(line)+display.Accent(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	if anyApprox {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", display.Dim(display.ApproxMarker+" "+approxFootnote))
	}
	fmt.Fprintln(w)
}

// describeMethod summarises the calculation settings in use.
func describeMethod(s *session) string {
	if s.cfg.Source == config.SourceRemote {
		return fmt.Sprintf("Al Adhan API, %s, %s", strings.ToUpper(s.cfg.Method), s.cfg.School)
	}
	return fmt.Sprintf("%s, %s", strings.ToUpper(s.cfg.Method), s.cfg.School)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location locationJSON      `json:"location"`
	Date     string            `json:"date"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *todayJSONNext    `json:"next"`
}

type locationJSON struct {
	Name      string  `json:"name,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UTCOffset float64 `json:"utc_offset"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func newLocationJSON(s *session, now time.Time) locationJSON {
	tz := s.location.Timezone
	if tz == "" {
		tz, _ = now.Zone()
	}
	return locationJSON{
		Name:      s.location.Name,
		Timezone:  tz,
		Latitude:  s.location.Geo.LatitudeDegrees(),
		Longitude: s.location.Geo.LongitudeDegrees(),
		UTCOffset: s.location.Geo.UTCOffset,
	}
}

// timingsMap keys formatted times by lower-case prayer name.
func timingsMap(prayers []prayer.Prayer, layout string) map[string]string {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[strings.ToLower(p.Name())] = p.Time.Format(layout)
	}
	return timings
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *session, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time) error {
	out := todayJSON{
		Location: newLocationJSON(s, now),
		Date:     now.Format(time.DateOnly),
		Timings:  timingsMap(prayers, s.layout),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name())
	}

	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name()),
			Time:      next.Time.Format(s.layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
