package prayer

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"
)

// Output modes understood by FormatOutput.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// FormatData is the value custom templates are executed against.
type FormatData struct {
	Name      string // "Asr"
	ShortName string // "A"
	Key       string // "asr", as accepted by ParseEvent
	Time      string // in the caller's layout, "15:02" or "3:02 PM"
	Date      string // "Feb 28, 2026"
	Remaining string // "2h 15m"
	Hours     int
	Minutes   int
	Seconds   int // whole seconds remaining
}

var formatters = map[string]func(FormatData) string{
	FormatTimeRemaining:      func(d FormatData) string { return d.Remaining },
	FormatNextPrayerTime:     func(d FormatData) string { return d.Time },
	FormatNameAndTime:        func(d FormatData) string { return d.Name + " " + d.Time },
	FormatNameAndRemaining:   func(d FormatData) string { return d.Name + " " + d.Remaining },
	FormatShortNameAndTime:   func(d FormatData) string { return d.ShortName + " " + d.Time },
	FormatShortNameAndRemain: func(d FormatData) string { return d.ShortName + " " + d.Remaining },
	FormatFull:               func(d FormatData) string { return fmt.Sprintf("%s %s (%s)", d.Name, d.Time, d.Remaining) },
}

var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// FormatModes returns the named output modes, sorted.
func FormatModes() []string {
	modes := make([]string, 0, len(formatters))
	for m := range formatters {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}

// IsTemplate reports whether mode is a custom Go template rather than a named mode.
func IsTemplate(mode string) bool {
	return strings.Contains(mode, "{{")
}

// ValidateFormat checks that mode is a named mode or a template that parses.
func ValidateFormat(mode string) error {
	if IsTemplate(mode) {
		_, err := parseTemplate(mode)
		return err
	}
	if _, ok := formatters[mode]; !ok {
		return fmt.Errorf("unknown format %q (valid: %s, or a Go template)", mode, strings.Join(FormatModes(), ", "))
	}
	return nil
}

// NewFormatData collects the display fields of p as seen at now. timeLayout
// is a time.Format layout such as "15:04" or "3:04 PM".
func NewFormatData(p Prayer, now time.Time, timeLayout string) FormatData {
	d := TimeRemaining(p, now)
	if d < 0 {
		d = 0
	}
	return FormatData{
		Name:      p.Name(),
		ShortName: p.Event.Short(),
		Key:       strings.ToLower(p.Name()),
		Time:      p.Time.Format(timeLayout),
		Date:      p.Time.Format(DateLayout),
		Remaining: FormatRemaining(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
		Seconds:   int(d.Seconds()),
	}
}

// FormatOutput renders p for display in the given mode. A mode containing
// "{{" is executed as a template over FormatData; unknown modes fall back to
// name-and-time. Template failures are rendered as "template-err: ..." so a
// status bar shows the problem instead of going blank.
func FormatOutput(p Prayer, now time.Time, mode string, timeLayout string) string {
	data := NewFormatData(p, now, timeLayout)
	if IsTemplate(mode) {
		return formatCustom(mode, data)
	}
	f, ok := formatters[mode]
	if !ok {
		f = formatters[FormatNameAndTime]
	}
	return f(data)
}

func parseTemplate(text string) (*template.Template, error) {
	return template.New("custom").Funcs(templateFuncs).Option("missingkey=error").Parse(text)
}

func formatCustom(text string, data FormatData) string {
	t, err := parseTemplate(text)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return b.String()
}
