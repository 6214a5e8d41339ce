package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"echospell/internal/engine"
	"echospell/internal/models"
	"echospell/internal/progress"
	"echospell/internal/repository"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or already-closed session ID.
var ErrSessionNotFound = errors.New("no active session")

// SessionService owns the live practice sessions. Each learner interaction
// is processed to completion under the lock; there are no concurrent
// attempts against the same session state.
type SessionService struct {
	engine   *engine.Engine
	store    progress.Store
	attempts *repository.AttemptRepository // nil disables the attempt archive

	streakLookback int
	recentDays     int

	mu       sync.Mutex
	sessions map[string]*engine.Session

	now func() time.Time
}

// NewSessionService creates a session service. attempts may be nil when the
// archive database is not configured.
func NewSessionService(eng *engine.Engine, store progress.Store, attempts *repository.AttemptRepository, streakLookback, recentDays int) *SessionService {
	return &SessionService{
		engine:         eng,
		store:          store,
		attempts:       attempts,
		streakLookback: streakLookback,
		recentDays:     recentDays,
		sessions:       make(map[string]*engine.Session),
		now:            time.Now,
	}
}

// Start creates a new practice session for a language/voice pair and draws
// its first target. Content configuration errors are fatal to the session.
func (s *SessionService) Start(language, voice string) (*engine.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.engine.NewSession(uuid.NewString(), language, voice, s.now())
	if err != nil {
		return nil, err
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a session by ID, first applying the wall-clock limit: an
// expired session is ended and its aggregates folded before it is returned.
func (s *SessionService) Get(id string) (*engine.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.expireLocked(sess)
	return sess, nil
}

// Remaining returns the session's remaining wall-clock time.
func (s *SessionService) Remaining(sess *engine.Session) time.Duration {
	return s.engine.Remaining(sess, s.now())
}

// Submit evaluates a typed answer for the session and applies the
// progression rules. An expired or ended session accepts no attempts; the
// returned outcome reports SessionOver instead.
func (s *SessionService) Submit(id, typed string) (engine.Outcome, *engine.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return engine.Outcome{}, nil, ErrSessionNotFound
	}

	if s.expireLocked(sess) || sess.Ended {
		return engine.Outcome{SessionOver: true}, sess, nil
	}

	target := sess.Target
	mode := sess.Mode
	level := sess.Level

	out, err := s.engine.Submit(sess, typed)
	if err != nil {
		return out, sess, err
	}

	if s.attempts != nil {
		if _, aerr := s.attempts.RecordAttempt(sess.ID, sess.Language, string(mode), level, target, typed, out.Correct); aerr != nil {
			// Archive loss is non-fatal; the session keeps its own counters.
			log.Printf("Warning: failed to archive attempt: %v", aerr)
		}
	}

	if out.SessionOver {
		s.foldLocked(sess)
	}
	return out, sess, nil
}

// End closes a session, folds its aggregates into the day's record and
// forgets it.
func (s *SessionService) End(id string) (engine.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return engine.Summary{}, ErrSessionNotFound
	}

	summary := s.engine.End(sess, s.now())
	s.recordSummary(summary)
	delete(s.sessions, id)
	return summary, nil
}

// Reset folds and discards the session, then starts a fresh one with the
// same language and voice.
func (s *SessionService) Reset(id string) (*engine.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if !old.Ended {
		s.recordSummary(s.engine.End(old, s.now()))
	}
	delete(s.sessions, id)

	fresh, err := s.engine.NewSession(uuid.NewString(), old.Language, old.Voice, s.now())
	if err != nil {
		return nil, err
	}
	s.sessions[fresh.ID] = fresh
	return fresh, nil
}

// DashboardData is what the parent dashboard renders.
type DashboardData struct {
	Language        string                 `json:"language"`
	Streak          int                    `json:"streak"`
	Recent          []progress.DayAccuracy `json:"recent"`
	StrugglingWords []models.WordStats     `json:"strugglingWords"`
}

// Dashboard computes the day streak, recent accuracy series and struggling
// words for a language.
func (s *SessionService) Dashboard(language string) (DashboardData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	data := DashboardData{Language: language}

	streak, err := s.store.Streak(now, language, false)
	if err != nil {
		s.degradeStore(err)
		streak, _ = s.store.Streak(now, language, false)
	}
	data.Streak = streak

	recent, err := s.store.Recent(now, language, s.recentDays)
	if err != nil {
		s.degradeStore(err)
		recent, _ = s.store.Recent(now, language, s.recentDays)
	}
	data.Recent = recent

	if s.attempts != nil {
		words, err := s.attempts.StrugglingWords(language, 0.6, 3)
		if err != nil {
			log.Printf("Warning: failed to load struggling words: %v", err)
		} else {
			data.StrugglingWords = words
		}
	}

	return data, nil
}

// CleanupExpired ends and folds every session past its wall-clock limit.
// Run periodically from the server's background ticker.
func (s *SessionService) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ended := 0
	for id, sess := range s.sessions {
		if sess.Ended || s.expireLocked(sess) {
			delete(s.sessions, id)
			ended++
		}
	}
	return ended
}

// expireLocked ends and folds the session if its time is up. Caller holds
// the lock.
func (s *SessionService) expireLocked(sess *engine.Session) bool {
	if sess.Ended {
		return false
	}
	now := s.now()
	if !s.engine.Expired(sess, now) {
		return false
	}
	s.foldLocked(sess)
	return true
}

// foldLocked ends the session and records its aggregates.
func (s *SessionService) foldLocked(sess *engine.Session) {
	s.recordSummary(s.engine.End(sess, s.now()))
}

// recordSummary writes the day's record, degrading to an in-memory store if
// the persisted one is unavailable.
func (s *SessionService) recordSummary(summary engine.Summary) {
	rec := progress.DayRecord{
		Correct: summary.Correct,
		Wrong:   summary.Wrong,
		Level:   summary.Level,
		Mode:    string(summary.Mode),
	}

	if err := s.store.Record(summary.Date, summary.Language, rec); err != nil {
		s.degradeStore(err)
		if err := s.store.Record(summary.Date, summary.Language, rec); err != nil {
			log.Printf("Warning: failed to record daily stats: %v", err)
		}
	}
}

// degradeStore swaps in an empty in-memory store after a storage failure.
// Loss of historical stats is non-fatal to a live session.
func (s *SessionService) degradeStore(err error) {
	if !errors.Is(err, progress.ErrStorageUnavailable) {
		return
	}
	if _, ok := s.store.(*progress.MemoryStore); ok {
		return
	}
	log.Printf("Warning: progress store unavailable, continuing with in-memory stats: %v", err)
	s.store = progress.NewMemoryStore(s.streakLookback)
}
