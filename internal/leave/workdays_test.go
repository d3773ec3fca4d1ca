package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(date("2026-03-02"), date("2026-03-02")))
	assert.Equal(t, 7, InclusiveDays(date("2026-03-02"), date("2026-03-08")))
	assert.Equal(t, 0, InclusiveDays(date("2026-03-08"), date("2026-03-02")))
}

func TestWorkingDays(t *testing.T) {
	// 2026-03-02 is a Monday.
	tests := []struct {
		name     string
		start    string
		end      string
		holidays map[string]struct{}
		want     int
	}{
		{
			name:  "full work week",
			start: "2026-03-02", end: "2026-03-06",
			want: 5,
		},
		{
			name:  "week with weekend",
			start: "2026-03-02", end: "2026-03-08",
			want: 5,
		},
		{
			name:  "weekend only",
			start: "2026-03-07", end: "2026-03-08",
			want: 0,
		},
		{
			name:  "holiday mid-week excluded",
			start: "2026-03-02", end: "2026-03-06",
			holidays: map[string]struct{}{
				"2026-03-04": {},
			},
			want: 4,
		},
		{
			name:  "holiday on weekend changes nothing",
			start: "2026-03-02", end: "2026-03-08",
			holidays: map[string]struct{}{
				"2026-03-07": {},
			},
			want: 5,
		},
		{
			name:  "inverted range",
			start: "2026-03-06", end: "2026-03-02",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkingDays(date(tt.start), date(tt.end), tt.holidays)
			assert.Equal(t, tt.want, got)
		})
	}
}
