package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileStore persists daily records as a single JSON file, read entirely on
// every access and rewritten entirely on every Record call. The mutex
// serializes the read-modify-write; the design assumes a single writing
// process for the file itself.
type FileStore struct {
	path     string
	lookback int
	mu       sync.Mutex
}

// NewFileStore creates a file-backed store. lookback bounds the streak scan.
func NewFileStore(path string, lookback int) *FileStore {
	return &FileStore{path: path, lookback: lookback}
}

// Check verifies the store can be read, so callers can fall back to an
// in-memory store up front instead of failing mid-session.
func (s *FileStore) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.load()
	return err
}

// Record folds a session's aggregates into the day's record (last-write-wins
// for the same day and language).
func (s *FileStore) Record(date time.Time, language string, rec DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data.set(date, language, rec)
	return s.save(data)
}

// Streak counts consecutive practiced days ending at asOf.
func (s *FileStore) Streak(asOf time.Time, language string, requireCorrect bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return 0, err
	}
	return streakIn(data, asOf, language, s.lookback, requireCorrect), nil
}

// Recent returns the last-N-days accuracy series, oldest first.
func (s *FileStore) Recent(asOf time.Time, language string, days int) ([]DayAccuracy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return recentIn(data, asOf, language, days), nil
}

func (s *FileStore) load() (records, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(records), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorageUnavailable, s.path, err)
	}

	var data records
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	if data == nil {
		data = make(records)
	}
	return data, nil
}

func (s *FileStore) save(data records) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return nil
}
