package service

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"echospell/internal/content"
	"echospell/internal/engine"
	"echospell/internal/progress"
)

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, rules engine.Rules) *engine.Engine {
	t.Helper()
	lib, err := content.NewLibrary(
		[]content.Skill{
			{Level: 1, Label: "Starters", Words: []string{"cat", "dog", "sun", "hat", "red"}},
		},
		[]content.TemplateSet{
			{Level: 1, Sentences: []string{"The child likes {word}."}},
		},
	)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return engine.New(lib, rules, rand.New(rand.NewSource(1)))
}

func newTestService(t *testing.T, store progress.Store) *SessionService {
	t.Helper()
	svc := NewSessionService(testEngine(t, engine.DefaultRules()), store, nil, 30, 7)
	svc.now = func() time.Time { return testStart }
	return svc
}

func TestStartAndSubmit(t *testing.T) {
	svc := newTestService(t, progress.NewMemoryStore(30))

	sess, err := svc.Start("en", "alloy")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sess.ID == "" || sess.Target == "" {
		t.Fatalf("session not initialized: %+v", sess)
	}

	out, _, err := svc.Submit(sess.ID, sess.Target)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !out.Correct {
		t.Error("expected correct verdict for the target itself")
	}
	if sess.Correct != 1 {
		t.Errorf("Correct = %d, want 1", sess.Correct)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	svc := newTestService(t, progress.NewMemoryStore(30))

	if _, _, err := svc.Submit("nope", "cat"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Submit() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestEndFoldsIntoDailyRecord(t *testing.T) {
	store := progress.NewMemoryStore(30)
	svc := newTestService(t, store)

	sess, err := svc.Start("en", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Submit(sess.ID, sess.Target); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Submit(sess.ID, "xyzzy"); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.End(sess.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if summary.Correct != 1 || summary.Wrong != 1 {
		t.Errorf("summary = %d/%d, want 1/1", summary.Correct, summary.Wrong)
	}

	recent, err := store.Recent(testStart, "en", 1)
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].Correct != 1 || recent[0].Wrong != 1 {
		t.Errorf("daily record = (%d,%d), want (1,1)", recent[0].Correct, recent[0].Wrong)
	}

	// Ended sessions are forgotten.
	if _, err := svc.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after end error = %v, want ErrSessionNotFound", err)
	}
}

func TestExpiredSessionRejectsAttemptsAndFolds(t *testing.T) {
	store := progress.NewMemoryStore(30)
	svc := newTestService(t, store)

	sess, err := svc.Start("en", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Submit(sess.ID, sess.Target); err != nil {
		t.Fatal(err)
	}

	// Clock runs past the session limit.
	svc.now = func() time.Time { return testStart.Add(11 * time.Minute) }

	out, _, err := svc.Submit(sess.ID, "anything")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !out.SessionOver {
		t.Error("expected SessionOver for an expired session")
	}
	if !sess.Ended {
		t.Error("expired session not marked ended")
	}

	recent, err := store.Recent(testStart.Add(11*time.Minute), "en", 1)
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].Correct != 1 {
		t.Errorf("daily record correct = %d, want 1", recent[0].Correct)
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	store := progress.NewMemoryStore(30)
	svc := newTestService(t, store)

	sess, err := svc.Start("en", "aria")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Submit(sess.ID, sess.Target); err != nil {
		t.Fatal(err)
	}

	fresh, err := svc.Reset(sess.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if fresh.ID == sess.ID {
		t.Error("reset returned the same session ID")
	}
	if fresh.Language != "en" || fresh.Voice != "aria" {
		t.Errorf("reset lost language/voice: %q/%q", fresh.Language, fresh.Voice)
	}
	if fresh.Correct != 0 {
		t.Errorf("fresh session Correct = %d, want 0", fresh.Correct)
	}

	// The old session's aggregates were folded first.
	recent, err := store.Recent(testStart, "en", 1)
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].Correct != 1 {
		t.Errorf("daily record correct = %d, want 1", recent[0].Correct)
	}
}

func TestCleanupExpired(t *testing.T) {
	svc := newTestService(t, progress.NewMemoryStore(30))

	if _, err := svc.Start("en", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Start("en", ""); err != nil {
		t.Fatal(err)
	}

	if n := svc.CleanupExpired(); n != 0 {
		t.Errorf("CleanupExpired() = %d before expiry, want 0", n)
	}

	svc.now = func() time.Time { return testStart.Add(time.Hour) }
	if n := svc.CleanupExpired(); n != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", n)
	}
}

func TestDashboard(t *testing.T) {
	store := progress.NewMemoryStore(30)
	if err := store.Record(testStart, "en", progress.DayRecord{Correct: 3, Wrong: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(testStart.AddDate(0, 0, -1), "en", progress.DayRecord{Correct: 2, Wrong: 0}); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, store)
	data, err := svc.Dashboard("en")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if data.Streak != 2 {
		t.Errorf("Streak = %d, want 2", data.Streak)
	}
	if len(data.Recent) != 7 {
		t.Errorf("len(Recent) = %d, want 7", len(data.Recent))
	}
	if got := data.Recent[6].Accuracy; got != 0.75 {
		t.Errorf("today's accuracy = %v, want 0.75", got)
	}
}

// failingStore simulates an unreadable/unwritable progress file.
type failingStore struct{}

func (failingStore) Record(time.Time, string, progress.DayRecord) error {
	return fmt.Errorf("%w: disk on fire", progress.ErrStorageUnavailable)
}

func (failingStore) Streak(time.Time, string, bool) (int, error) {
	return 0, fmt.Errorf("%w: disk on fire", progress.ErrStorageUnavailable)
}

func (failingStore) Recent(time.Time, string, int) ([]progress.DayAccuracy, error) {
	return nil, fmt.Errorf("%w: disk on fire", progress.ErrStorageUnavailable)
}

func TestStorageFailureDegradesToMemory(t *testing.T) {
	svc := newTestService(t, failingStore{})

	sess, err := svc.Start("en", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Submit(sess.ID, sess.Target); err != nil {
		t.Fatal(err)
	}

	// Folding hits the broken store and must not fail the session flow.
	if _, err := svc.End(sess.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	if _, ok := svc.store.(*progress.MemoryStore); !ok {
		t.Errorf("store = %T, want fallback *progress.MemoryStore", svc.store)
	}

	// The fallback store received the record.
	recent, err := svc.store.Recent(testStart, "en", 1)
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].Correct != 1 {
		t.Errorf("fallback record correct = %d, want 1", recent[0].Correct)
	}

	// Dashboard keeps working on the fallback.
	if _, err := svc.Dashboard("en"); err != nil {
		t.Errorf("Dashboard() error = %v", err)
	}
}
