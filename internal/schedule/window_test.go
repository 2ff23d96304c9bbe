package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	w, err := Resolve(testDate, "14:00", "15:00")
	require.NoError(t, err)

	assert.Equal(t, at(13, 55), w.AdmissionOpen)
	assert.Equal(t, at(14, 0), w.Start)
	assert.Equal(t, at(15, 0), w.End)
}

func TestResolveInvalidClock(t *testing.T) {
	cases := []struct{ start, end string }{
		{"14", "15:00"},
		{"25:00", "15:00"},
		{"14:00", "15:61"},
		{"2pm", "3pm"},
		{"", "15:00"},
	}
	for _, tc := range cases {
		_, err := Resolve(testDate, tc.start, tc.end)
		assert.Error(t, err, "start=%q end=%q", tc.start, tc.end)
	}
}

func TestEvaluateStates(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want State
	}{
		{"well before admission", at(13, 0), StateTooEarly},
		{"one second before admission", at(13, 55).Add(-time.Second), StateTooEarly},
		{"admission opens", at(13, 55), StateAdmitted},
		{"just before start", at(13, 56), StateAdmitted},
		{"scheduled start", at(14, 0), StateAdmitted},
		{"mid interview", at(14, 30), StateAdmitted},
		{"scheduled end inclusive", at(15, 0), StateAdmitted},
		{"one second past end", at(15, 0).Add(time.Second), StateExpired},
		{"next day", at(15, 0).Add(24 * time.Hour), StateExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, _, err := Evaluate(testDate, "14:00", "15:00", tc.now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}
}

// The three states must partition time with no gaps: sweeping a window at
// minute granularity, every instant lands in exactly the interval its
// position dictates.
func TestEvaluatePartition(t *testing.T) {
	w, err := Resolve(testDate, "09:30", "10:45")
	require.NoError(t, err)

	for now := w.AdmissionOpen.Add(-2 * time.Hour); now.Before(w.End.Add(2 * time.Hour)); now = now.Add(time.Minute) {
		state, _, err := Evaluate(testDate, "09:30", "10:45", now)
		require.NoError(t, err)

		switch {
		case now.Before(w.AdmissionOpen):
			assert.Equal(t, StateTooEarly, state, "now=%s", now)
		case now.After(w.End):
			assert.Equal(t, StateExpired, state, "now=%s", now)
		default:
			assert.Equal(t, StateAdmitted, state, "now=%s", now)
		}
	}
}

func TestEvaluateMidnightBoundary(t *testing.T) {
	// 00:00 start: admission opens on the previous calendar day.
	state, w, err := Evaluate(testDate, "00:00", "01:00", time.Date(2023, 12, 31, 23, 56, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, StateAdmitted, state)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 55, 0, 0, time.UTC), w.AdmissionOpen)
}

func TestDuration(t *testing.T) {
	d, err := Duration("14:00", "15:30")
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = Duration("23:30", "00:15")
	require.NoError(t, err)
	assert.Equal(t, -1395, d)
}
