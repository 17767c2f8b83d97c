package slackgw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSlackTimestamp(t *testing.T) {
	got := parseSlackTimestamp("1700000000.000100")
	want := time.Unix(1700000000, 100*int64(time.Microsecond))
	assert.True(t, got.Equal(want))
}

func TestParseSlackTimestamp_NoFraction(t *testing.T) {
	got := parseSlackTimestamp("1700000000")
	assert.True(t, got.Equal(time.Unix(1700000000, 0)))
}

func TestParseSlackTimestamp_Malformed(t *testing.T) {
	assert.True(t, parseSlackTimestamp("not-a-timestamp").IsZero())
}
