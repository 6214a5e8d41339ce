package progress

import (
	"sync"
	"time"
)

// MemoryStore keeps daily records in memory only. It is the fallback when
// the persisted store is unavailable: sessions keep working, stats are
// simply lost on restart.
type MemoryStore struct {
	lookback int
	mu       sync.Mutex
	data     records
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(lookback int) *MemoryStore {
	return &MemoryStore{lookback: lookback, data: make(records)}
}

func (s *MemoryStore) Record(date time.Time, language string, rec DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.set(date, language, rec)
	return nil
}

func (s *MemoryStore) Streak(asOf time.Time, language string, requireCorrect bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return streakIn(s.data, asOf, language, s.lookback, requireCorrect), nil
}

func (s *MemoryStore) Recent(asOf time.Time, language string, days int) ([]DayAccuracy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recentIn(s.data, asOf, language, days), nil
}
