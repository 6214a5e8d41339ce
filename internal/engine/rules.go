package engine

import "time"

// Rules holds the reward and progression thresholds for a session. The
// observed app variants differ only in these numbers, so they are injected
// at session start rather than hardcoded.
type Rules struct {
	// LevelUpEvery advances the skill level every Nth cumulative correct
	// answer. 0 disables level progression.
	LevelUpEvery int

	// RevealAfterFails shows the answer after N consecutive misses on the
	// same target. 0 disables reveals.
	RevealAfterFails int

	// XPPerCorrect is awarded for each correct answer. The first correct
	// answer after a reveal earns half.
	XPPerCorrect int

	// BadgeEveryXP grants a badge each time total XP crosses a multiple.
	// 0 disables badges.
	BadgeEveryXP int

	// StartingHearts is the hearts budget for a session. 0 disables hearts;
	// with hearts enabled the session ends when they run out.
	StartingHearts int

	// HeartRegenEvery restores one heart every Nth cumulative correct answer,
	// capped at StartingHearts. 0 disables regeneration.
	HeartRegenEvery int

	// SessionLimit is the wall-clock budget for a session.
	SessionLimit time.Duration
}

// DefaultRules returns the plain-mode rules: level up every 5 correct,
// reveal after 3 misses, no hearts, 10 minute sessions.
func DefaultRules() Rules {
	return Rules{
		LevelUpEvery:     5,
		RevealAfterFails: 3,
		XPPerCorrect:     10,
		BadgeEveryXP:     50,
		SessionLimit:     10 * time.Minute,
	}
}

// HeartsEnabled reports whether this rule set uses the hearts resource.
func (r Rules) HeartsEnabled() bool {
	return r.StartingHearts > 0
}
