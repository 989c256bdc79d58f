package postgres

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Histories are ordered by comparing stored timestamp strings, so the
// format must sort exactly like the instants, including within a second
// where the fractional parts differ.
func TestFormatTime_LexicalOrderMatchesInstantOrder(t *testing.T) {
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	instants := []time.Time{
		base.Add(123 * time.Millisecond),
		base,
		base.Add(120 * time.Millisecond),
		base.Add(time.Second),
		base.Add(999999999 * time.Nanosecond),
	}

	formatted := make([]string, len(instants))
	for i, ts := range instants {
		formatted[i] = formatTime(ts)
		assert.Len(t, formatted[i], len(timeFormat))
	}

	sort.Slice(instants, func(i, j int) bool { return instants[i].Before(instants[j]) })
	sort.Strings(formatted)
	for i, ts := range instants {
		assert.Equal(t, formatTime(ts), formatted[i])
	}
}

func TestFormatTime_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2026, 8, 31, 7, 0, 0, 120000000, loc)
	assert.Equal(t, "2026-08-31T10:00:00.120000000Z", formatTime(ts))
}
