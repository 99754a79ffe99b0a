package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		interval int
		want     TimeOfDay
	}{
		{"half hour", 4.5, 0, TimeOfDay{4, 30, 0}},
		{"midnight", 0, 0, TimeOfDay{0, 0, 0}},
		{"seconds kept below 30", 6 + 10.0/60 + 20.5/3600, 0, TimeOfDay{6, 10, 20}},
		{"seconds round up", 6 + 10.0/60 + 45.5/3600, 0, TimeOfDay{6, 11, 0}},
		{"round up carries hour", 6 + 59.0/60 + 40.5/3600, 0, TimeOfDay{7, 0, 0}},
		{"end of day does not wrap", 23.99972, 0, TimeOfDay{23, 59, 58}},
		{"interval wraps day", 23 + 55.0/60, 10, TimeOfDay{0, 5, 0}},
		{"interval adds minutes", 12.25, 90, TimeOfDay{13, 45, 0}},
		{"negative interval", 0.25, -30, TimeOfDay{23, 45, 0}},
		{"negative input uses magnitude", -0.5, 0, TimeOfDay{0, 30, 0}},
		{"hours past a day wrap", 25.5, 0, TimeOfDay{1, 30, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.hours, tt.interval))
		})
	}
}

func TestTimeOfDay_At(t *testing.T) {
	zone := time.FixedZone("EDT", -4*3600)
	date := time.Date(2024, time.June, 21, 17, 45, 0, 0, time.UTC)

	got := TimeOfDay{5, 12, 7}.At(date, zone)

	assert.Equal(t, time.Date(2024, time.June, 21, 5, 12, 7, 0, zone), got)
	assert.Equal(t, zone, got.Location())
}

func TestTimeOfDay_StringAndHours(t *testing.T) {
	tod := TimeOfDay{4, 30, 36}
	assert.Equal(t, "04:30:36", tod.String())
	assert.InDelta(t, 4.51, tod.Hours(), 1e-9)
}
