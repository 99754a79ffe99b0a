package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: fmt.Sprintf("Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: %s (Midnight is accepted for HalfNight)",
			strings.Join(prayer.Names(prayer.Events()), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// parseDays reads the --days value.
func parseDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", v)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	event, err := prayer.ParseEvent(args[0])
	if err != nil {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.Names(prayer.Events()), ", "))
	}

	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	cfg := effectiveConfig(cmd)
	cfg.Prayers = event.String()

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
	name := event.String()

	if days == 1 {
		dd := daysList[0]
		timeStr := findTime(dd.Prayers, event, s.layout)
		if FlagJSON {
			return writeJSON(out, queryJSONSingle{
				Prayer:       strings.ToLower(name),
				Time:         timeStr,
				Date:         dd.Date.Format(time.DateOnly),
				Approximated: dd.Approx[event],
			})
		}
		fmt.Fprintf(out, "%s %s\n", name, timeStr)
		return nil
	}

	if FlagJSON {
		multi := queryJSONMulti{
			Location: newLocationJSON(s, now),
			Prayer:   strings.ToLower(name),
		}
		for _, dd := range daysList {
			multi.Days = append(multi.Days, queryJSONDay{
				Date:         dd.Date.Format(time.DateOnly),
				Time:         findTime(dd.Prayers, event, s.layout),
				Approximated: dd.Approx[event],
			})
		}
		return writeJSON(out, multi)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("%s Times - %d Days", name, days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.location.label())
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{"Date", name})
	tbl.SetFootnote(approxFootnote)
	for i, dd := range daysList {
		tbl.AddRow([]string{dd.Date.Format("Mon 02 Jan"), findTime(dd.Prayers, event, s.layout)})
		if dd.Approx[event] {
			tbl.MarkCell(i, 1)
		}
	}
	tbl.SetHighlightRow(0)

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

type queryJSONSingle struct {
	Prayer       string `json:"prayer"`
	Time         string `json:"time"`
	Date         string `json:"date"`
	Approximated bool   `json:"approximated,omitempty"`
}

type queryJSONMulti struct {
	Location locationJSON   `json:"location"`
	Prayer   string         `json:"prayer"`
	Days     []queryJSONDay `json:"days"`
}

type queryJSONDay struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Approximated bool   `json:"approximated,omitempty"`
}
