package engine

import "time"

// Mode is the active practice mode of a session.
type Mode string

const (
	ModeWord     Mode = "word"
	ModeSentence Mode = "sentence"
)

// Session is the mutable in-memory state of one practice session. It is
// created at session start, mutated by the engine on each submitted attempt,
// and discarded at session end; only the Summary aggregates survive.
type Session struct {
	ID       string
	Language string
	Voice    string

	Level  int
	Mode   Mode
	Target string

	Correct          int
	Wrong            int
	ConsecutiveWrong int

	// History is the round history: words answered correctly at the current
	// level, excluded from selection until the list is exhausted.
	History map[string]bool

	Streak     int
	BestStreak int
	XP         int
	Hearts     int
	Badges     int

	// ReducedReward halves the XP of the next correct answer after a reveal.
	ReducedReward bool

	StartedAt time.Time
	Ended     bool
}

// Summary is the aggregate folded into the daily record at session end.
type Summary struct {
	Date     time.Time
	Language string
	Correct  int
	Wrong    int
	Level    int
	Mode     Mode
}

// Accuracy returns correct/(correct+wrong), or 0 with no attempts.
func (s Summary) Accuracy() float64 {
	total := s.Correct + s.Wrong
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}
