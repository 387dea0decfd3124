package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareModified_RelativeDuration(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	// A relative value sets the threshold instant now-d: "<" matches a
	// file modified before it (older than d), ">" one modified after
	// it (newer than d).
	cases := []struct {
		name      string
		modified  time.Time
		query     string
		wantMatch bool
	}{
		{"within 1 day", now.Add(-2 * time.Hour), "<1d", false},
		{"older than 1 day", now.Add(-48 * time.Hour), "<1d", true},
		{"older than 1 hour", now.Add(-2 * time.Hour), ">1h", false},
		{"within 1 hour", now.Add(-30 * time.Minute), ">1h", true},
		{"older than a week", now.Add(-8 * 24 * time.Hour), ">1w", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := compareModified(tc.modified, tc.query, now)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMatch, ok)
		})
	}
}

func TestCompareModified_AbsoluteDateOnly_WholeDayEquality(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.Local)
	modified := time.Date(2026, 7, 15, 23, 59, 0, 0, time.Local)
	ok, err := compareModified(modified, "=2026-07-15", now)
	require.NoError(t, err)
	assert.True(t, ok)

	modified2 := time.Date(2026, 7, 16, 0, 0, 1, 0, time.Local)
	ok, err = compareModified(modified2, "=2026-07-15", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareModified_AbsoluteDateTime_ExactEquality(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.Local)
	modified := time.Date(2026, 7, 15, 10, 30, 0, 0, time.Local)
	ok, err := compareModified(modified, "=2026-07-15 10:30:00", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = compareModified(modified.Add(time.Second), "=2026-07-15 10:30:00", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareModified_InvalidValue(t *testing.T) {
	_, err := compareModified(time.Now(), "not-a-date", time.Now())
	assert.Error(t, err)
}

func TestCompareModified_MissingValue(t *testing.T) {
	_, err := compareModified(time.Now(), "", time.Now())
	assert.Error(t, err)
}

func TestParseRelativeDuration_Units(t *testing.T) {
	cases := map[string]time.Duration{
		"1s": time.Second,
		"2m": 2 * time.Minute,
		"3h": 3 * time.Hour,
		"4d": 4 * 24 * time.Hour,
		"1w": 7 * 24 * time.Hour,
		"1y": 365 * 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := parseRelativeDuration(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseRelativeDuration_InvalidUnit(t *testing.T) {
	_, err := parseRelativeDuration("5x")
	assert.Error(t, err)
}
