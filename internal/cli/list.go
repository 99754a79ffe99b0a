package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

const approxFootnote = "approximated from the night length or a reference latitude"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
				}
				days = n
			}
			return runList(cmd, days)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, 30)
		},
	}
}

// dayData holds a single day's prayers for list/query output.
type dayData struct {
	Date    time.Time
	Prayers []prayer.Prayer
	// Approx holds the events whose times were approximated.
	Approx map[prayer.Event]bool
}

// runList prints `days` consecutive schedules starting today.
func runList(cmd *cobra.Command, days int) error {
	cfg := effectiveConfig(cmd)

	s, err := newSession(cfg, time.Now())
	if err != nil {
		return err
	}
	now := s.localTime(time.Now())

	daysList, err := s.days(now, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(out, s, daysList, now)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times - %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.location.label())
	fmt.Fprintln(out)

	headers := []string{"Date"}
	headers = append(headers, prayer.Names(s.events)...)
	tbl := display.NewTable(headers)
	tbl.SetFootnote(approxFootnote)

	for i, dd := range daysList {
		row := []string{dd.Date.Format("Mon 02 Jan")}
		for j, e := range s.events {
			row = append(row, findTime(dd.Prayers, e, s.layout))
			if dd.Approx[e] {
				tbl.MarkCell(i, j+1)
			}
		}
		tbl.AddRow(row)
	}
	// Today is always the first row.
	tbl.SetHighlightRow(0)

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// days calculates `n` consecutive days starting at the calendar day of start.
func (s *session) days(start time.Time, n int) ([]dayData, error) {
	diag, hasDiag := s.strategy.(prayer.Diagnoser)

	result := make([]dayData, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		dd := dayData{Date: d}

		if hasDiag {
			full, err := diag.Compute(s.location.Geo, d)
			if err != nil {
				return nil, err
			}
			dd.Prayers = full.Schedule.Prayers(s.events)
			dd.Approx = approximated(full)
		} else {
			prayers, err := s.day(d)
			if err != nil {
				return nil, err
			}
			dd.Prayers = prayers
		}
		result = append(result, dd)
	}
	return result, nil
}

// approximated lists the events of a calculation that did not come from
// the sun reaching their angle on that day.
func approximated(d prayer.Diagnostics) map[prayer.Event]bool {
	approx := make(map[prayer.Event]bool)
	if d.Today.Position.Problematic {
		for _, e := range prayer.Events() {
			approx[e] = true
		}
		return approx
	}
	if d.Today.FajrRule == prayer.RuleRatio {
		approx[prayer.Fajr] = true
	}
	if d.Today.Isha.LocalRule == prayer.RuleRatio {
		approx[prayer.Isha] = true
	}
	if d.Tomorrow.Position.Problematic || d.Tomorrow.FajrRule == prayer.RuleRatio {
		approx[prayer.HalfNight] = true
	}
	return approx
}

// findTime returns the formatted time of e, or "" when it is not listed.
func findTime(prayers []prayer.Prayer, e prayer.Event, layout string) string {
	for _, p := range prayers {
		if p.Event == e {
			return p.Time.Format(layout)
		}
	}
	return ""
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location locationJSON  `json:"location"`
	Days     []listJSONDay `json:"days"`
}

type listJSONDay struct {
	Date         string            `json:"date"`
	Timings      map[string]string `json:"timings"`
	Approximated []string          `json:"approximated,omitempty"`
}

func printListJSON(w io.Writer, s *session, daysList []dayData, now time.Time) error {
	out := listJSONOutput{Location: newLocationJSON(s, now)}

	for _, dd := range daysList {
		day := listJSONDay{
			Date:    dd.Date.Format(time.DateOnly),
			Timings: timingsMap(dd.Prayers, s.layout),
		}
		for _, e := range s.events {
			if dd.Approx[e] {
				day.Approximated = append(day.Approximated, strings.ToLower(e.String()))
			}
		}
		out.Days = append(out.Days, day)
	}

	return writeJSON(w, out)
}
