package engine

import (
	"errors"
	"math/rand"
	"time"

	"echospell/internal/content"
)

// ErrSessionEnded is returned for attempts submitted after a session has
// ended; an ended session accepts no further attempts.
var ErrSessionEnded = errors.New("session has ended")

// Engine applies the progression policy: it turns evaluated attempts into
// level changes, mode changes, reward bookkeeping and reveal behaviour.
type Engine struct {
	lib      *content.Library
	selector *content.Selector
	rules    Rules
}

// New creates an engine over the given content library. Pass a seeded rng
// for deterministic selection in tests; nil uses a time-seeded source.
func New(lib *content.Library, rules Rules, rng *rand.Rand) *Engine {
	return &Engine{
		lib:      lib,
		selector: content.NewSelector(lib, rng),
		rules:    rules,
	}
}

// Rules returns the rule set the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewSession creates a session at the lowest configured level in word mode
// and draws its first target. Fails with content.ErrNotConfigured if the
// starting level has no word list.
func (e *Engine) NewSession(id, language, voice string, now time.Time) (*Session, error) {
	s := &Session{
		ID:        id,
		Language:  language,
		Voice:     voice,
		Level:     e.lib.MinLevel(),
		Mode:      ModeWord,
		History:   make(map[string]bool),
		Hearts:    e.rules.StartingHearts,
		StartedAt: now,
	}
	if err := e.ensureTarget(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Outcome describes what a submitted attempt did to the session.
type Outcome struct {
	Correct          bool
	Reveal           bool
	Answer           string // the revealed target, when Reveal is set
	XPEarned         int
	BadgeEarned      bool
	LeveledUp        bool
	SentenceUnlocked bool
	HeartLost        bool
	SessionOver      bool
	Target           string // next target to practice, empty if the session is over
}

// Submit evaluates a typed answer against the session's current target and
// applies the progression rules. The returned Outcome carries everything the
// caller needs to render feedback and fetch the next audio.
func (e *Engine) Submit(s *Session, typed string) (Outcome, error) {
	if s.Ended {
		return Outcome{}, ErrSessionEnded
	}

	var out Outcome
	if Evaluate(typed, s.Target) {
		out.Correct = true
		s.Correct++
		s.ConsecutiveWrong = 0
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}

		xp := e.rules.XPPerCorrect
		if s.ReducedReward {
			xp /= 2
			s.ReducedReward = false
		}
		s.XP += xp
		out.XPEarned = xp

		if e.rules.BadgeEveryXP > 0 {
			if badges := s.XP / e.rules.BadgeEveryXP; badges > s.Badges {
				s.Badges = badges
				out.BadgeEarned = true
			}
		}
		if e.rules.HeartsEnabled() && e.rules.HeartRegenEvery > 0 &&
			s.Correct%e.rules.HeartRegenEvery == 0 && s.Hearts < e.rules.StartingHearts {
			s.Hearts++
		}

		if s.Mode == ModeWord {
			s.History[s.Target] = true
			s.Target = ""

			// The level-up check runs on the cumulative correct counter: it
			// fires every Nth correct answer overall, not N since the last
			// level change. Only the round history resets.
			if e.rules.LevelUpEvery > 0 && s.Correct%e.rules.LevelUpEvery == 0 {
				if s.Level < e.lib.MaxLevel() {
					s.Level++
					s.History = make(map[string]bool)
					out.LeveledUp = true
				} else {
					s.Mode = ModeSentence
					out.SentenceUnlocked = true
				}
			}
		} else {
			s.Target = ""
		}
	} else {
		s.Wrong++
		s.ConsecutiveWrong++
		s.Streak = 0

		if e.rules.RevealAfterFails > 0 && s.ConsecutiveWrong >= e.rules.RevealAfterFails {
			out.Reveal = true
			out.Answer = s.Target
			s.ConsecutiveWrong = 0
			s.ReducedReward = true
			s.Target = ""

			if e.rules.HeartsEnabled() {
				if s.Hearts > 0 {
					s.Hearts--
					out.HeartLost = true
				}
				if s.Hearts == 0 {
					s.Ended = true
					out.SessionOver = true
				}
			}
		}
	}

	if !s.Ended && s.Target == "" {
		if err := e.ensureTarget(s); err != nil {
			return out, err
		}
	}
	out.Target = s.Target
	return out, nil
}

// Expired reports whether the session's wall-clock budget has run out.
func (e *Engine) Expired(s *Session, now time.Time) bool {
	return e.rules.SessionLimit > 0 && now.Sub(s.StartedAt) >= e.rules.SessionLimit
}

// Remaining returns the time left in the session, floored at zero.
func (e *Engine) Remaining(s *Session, now time.Time) time.Duration {
	left := e.rules.SessionLimit - now.Sub(s.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// End marks the session ended and returns the aggregates to fold into the
// day's record.
func (e *Engine) End(s *Session, now time.Time) Summary {
	s.Ended = true
	return Summary{
		Date:     now,
		Language: s.Language,
		Correct:  s.Correct,
		Wrong:    s.Wrong,
		Level:    s.Level,
		Mode:     s.Mode,
	}
}

// ensureTarget draws the next target when none is active. For word mode an
// exhausted round history is cleared first, so selection never runs dry.
func (e *Engine) ensureTarget(s *Session) error {
	if s.Target != "" {
		return nil
	}

	if s.Mode == ModeWord {
		skill, err := e.lib.Skill(s.Level)
		if err != nil {
			return err
		}
		if len(s.History) >= len(skill.Words) {
			s.History = make(map[string]bool)
		}
		word, err := e.selector.NextWord(s.Level, s.History)
		if err != nil {
			return err
		}
		s.Target = word
		return nil
	}

	sentence, err := e.selector.NextSentence(s.Level)
	if err != nil {
		return err
	}
	s.Target = sentence
	return nil
}
