package repository

import (
	"time"

	"echospell/internal/database"
	"echospell/internal/models"
)

// AttemptRepository handles the attempt archive. The archive is an
// append-only log used for dashboard analytics; the daily aggregates live in
// the progress store, not here.
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// RecordAttempt archives one evaluated attempt.
func (r *AttemptRepository) RecordAttempt(sessionID, language, mode string, level int, target, typed string, correct bool) (*models.Attempt, error) {
	query := `
		INSERT INTO attempts (session_id, language, mode, level, target, typed, correct)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, sessionID, language, mode, level, target, typed, correct)
	if err != nil {
		return nil, err
	}

	return &models.Attempt{
		ID:          id,
		SessionID:   sessionID,
		Language:    language,
		Mode:        mode,
		Level:       level,
		Target:      target,
		Typed:       typed,
		Correct:     correct,
		AttemptedAt: time.Now(),
	}, nil
}

// SessionAttempts retrieves all archived attempts for a session.
func (r *AttemptRepository) SessionAttempts(sessionID string) ([]models.Attempt, error) {
	query := `
		SELECT id, session_id, language, mode, level, target, typed, correct, attempted_at
		FROM attempts
		WHERE session_id = ?
		ORDER BY attempted_at ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.Language,
			&a.Mode,
			&a.Level,
			&a.Target,
			&a.Typed,
			&a.Correct,
			&a.AttemptedAt,
		)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// StrugglingWords returns words in word mode whose success rate is below
// maxRate, with at least minAttempts attempts.
func (r *AttemptRepository) StrugglingWords(language string, maxRate float64, minAttempts int) ([]models.WordStats, error) {
	query := `
		SELECT target,
		       COUNT(*) AS attempts,
		       SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS correct_count
		FROM attempts
		WHERE language = ? AND mode = 'word'
		GROUP BY target
		HAVING COUNT(*) >= ?
		ORDER BY target ASC
	`

	rows, err := r.db.Query(query, language, minAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.WordStats
	for rows.Next() {
		var ws models.WordStats
		if err := rows.Scan(&ws.Word, &ws.Attempts, &ws.Correct); err != nil {
			return nil, err
		}
		if ws.Attempts > 0 {
			ws.SuccessRate = float64(ws.Correct) / float64(ws.Attempts)
		}
		if ws.SuccessRate < maxRate {
			stats = append(stats, ws)
		}
	}

	return stats, rows.Err()
}
