package models

import "time"

// Attempt is one archived dictation attempt.
type Attempt struct {
	ID          int64
	SessionID   string
	Language    string
	Mode        string
	Level       int
	Target      string
	Typed       string
	Correct     bool
	AttemptedAt time.Time
}

// WordStats aggregates archived attempts for one word.
type WordStats struct {
	Word        string  `json:"word"`
	Attempts    int     `json:"attempts"`
	Correct     int     `json:"correct"`
	SuccessRate float64 `json:"successRate"`
}
