// Package progress owns the persisted per-day practice aggregates: one
// record per calendar day and language, plus the derived day streak and
// recent-accuracy series for the parent dashboard.
package progress

import (
	"errors"
	"time"
)

// ErrStorageUnavailable indicates the persisted store could not be read or
// written. Recoverable: callers degrade to an in-memory store, since losing
// historical stats is non-fatal to a live session.
var ErrStorageUnavailable = errors.New("progress store unavailable")

// dateKey is the calendar-date format used as the store key.
const dateKey = "2006-01-02"

// DayRecord is one day's aggregates for one language. Recording the same
// day twice overwrites: last session wins, matching the reset-at-midnight
// model (no accumulation across same-day sessions).
type DayRecord struct {
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
	Level   int    `json:"level"`
	Mode    string `json:"mode"`
}

// Accuracy returns correct/(correct+wrong), or 0 with no attempts.
func (r DayRecord) Accuracy() float64 {
	total := r.Correct + r.Wrong
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// DayAccuracy is one point of the dashboard accuracy series.
type DayAccuracy struct {
	Date     string  `json:"date"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Accuracy float64 `json:"accuracy"`
}

// Store is the daily stats store contract.
type Store interface {
	// Record folds a session's aggregates into the day's record,
	// overwriting any earlier record for the same day and language.
	Record(date time.Time, language string, rec DayRecord) error

	// Streak counts consecutive practiced days ending at asOf. With
	// requireCorrect set, a day only counts if it has at least one correct
	// answer. Lookback is bounded; it never scans unbounded history.
	Streak(asOf time.Time, language string, requireCorrect bool) (int, error)

	// Recent returns an accuracy point for each of the last `days` days,
	// oldest first, with accuracy 0 for days without attempts.
	Recent(asOf time.Time, language string, days int) ([]DayAccuracy, error)
}

// records maps date key -> language -> day record.
type records map[string]map[string]DayRecord

func (d records) set(date time.Time, language string, rec DayRecord) {
	key := date.Format(dateKey)
	if d[key] == nil {
		d[key] = make(map[string]DayRecord)
	}
	d[key][language] = rec
}

func (d records) get(date time.Time, language string) (DayRecord, bool) {
	rec, ok := d[date.Format(dateKey)][language]
	return rec, ok
}

// streakIn walks backward from asOf, counting consecutive days present,
// stopping at the first missing day or at the lookback bound.
func streakIn(d records, asOf time.Time, language string, lookback int, requireCorrect bool) int {
	streak := 0
	for i := 0; i < lookback; i++ {
		rec, ok := d.get(asOf.AddDate(0, 0, -i), language)
		if !ok {
			break
		}
		if requireCorrect && rec.Correct == 0 {
			break
		}
		streak++
	}
	return streak
}

// recentIn builds the last-N-days accuracy series, oldest day first.
func recentIn(d records, asOf time.Time, language string, days int) []DayAccuracy {
	series := make([]DayAccuracy, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := asOf.AddDate(0, 0, -i)
		point := DayAccuracy{Date: day.Format(dateKey)}
		if rec, ok := d.get(day, language); ok {
			point.Correct = rec.Correct
			point.Wrong = rec.Wrong
			point.Accuracy = rec.Accuracy()
		}
		series = append(series, point)
	}
	return series
}
