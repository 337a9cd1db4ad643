package user

import "time"

// Streak days are compared as calendar days pinned to UTC. The stored
// lastActiveDate is always a UTC midnight timestamp, so day transitions
// do not shift with the client's time zone.

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StreakState is the pair transitioned by RecordActivity.
type StreakState struct {
	Streak         int
	LastActiveDate time.Time
}

// RecordActivity applies the daily streak transition for an activity on the
// given day and reports whether the state changed.
//
//	no previous activity          -> streak 1
//	same day                      -> unchanged (idempotent)
//	previous day                  -> streak + 1
//	gap of two or more days, or a
//	stored date in the future     -> reset to 1
func RecordActivity(state StreakState, today time.Time) (StreakState, bool) {
	today = DayOf(today)

	if state.LastActiveDate.IsZero() {
		return StreakState{Streak: 1, LastActiveDate: today}, true
	}

	last := DayOf(state.LastActiveDate)
	switch {
	case last.Equal(today):
		return state, false
	case last.Equal(today.AddDate(0, 0, -1)):
		return StreakState{Streak: state.Streak + 1, LastActiveDate: today}, true
	default:
		return StreakState{Streak: 1, LastActiveDate: today}, true
	}
}
