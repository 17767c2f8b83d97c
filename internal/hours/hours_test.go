package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsed(t *testing.T) {
	cases := []struct {
		name    string
		timeIn  string
		timeOut string
		want    float64
	}{
		{"standard day", "9:00 AM", "5:30 PM", 8.5},
		{"overnight shift", "11:00 PM", "7:00 AM", 8.0},
		{"short break span", "12:00 PM", "12:45 PM", 0.75},
		{"same time", "9:00 AM", "9:00 AM", 0.0},
		{"irregular spacing", " 9:00 AM ", "5:00 PM", 8.0},
		{"lowercase meridiem", "9:00 am", "5:00 pm", 8.0},
		{"uneven minutes", "9:10 AM", "5:30 PM", 8.33},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Elapsed(tc.timeIn, tc.timeOut))
		})
	}
}

func TestElapsed_ParseFailureDegradesToZero(t *testing.T) {
	// Unparseable input must yield exactly 0.0, never an error or NaN.
	assert.Equal(t, 0.0, Elapsed("garbage", "5:00 PM"))
	assert.Equal(t, 0.0, Elapsed("9:00 AM", "garbage"))
	assert.Equal(t, 0.0, Elapsed("", ""))
	assert.Equal(t, 0.0, Elapsed("25:00 PM", "5:00 PM"))
}
