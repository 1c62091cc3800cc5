// Package repository handles database access for recorded attempts
package repository

import (
	"time"

	"otiyot/internal/database"
	"otiyot/internal/models"
)

// AttemptRepository records per-item answer attempts for parent stats
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// RecordAttempt stores one resolved answer attempt
func (r *AttemptRepository) RecordAttempt(a models.Attempt) (int64, error) {
	query := `
		INSERT INTO attempts (game, category, item_key, answer, is_correct, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now()
	}
	return r.db.ExecReturningID(query,
		string(a.Game), string(a.Category), a.ItemKey, a.Answer, a.IsCorrect, a.AttemptedAt)
}

// MostMissed returns the items with the lowest success rate, for the parent
// progress view. Items need at least two attempts to show up.
func (r *AttemptRepository) MostMissed(limit int) ([]models.MissedItem, error) {
	query := `
		SELECT item_key,
			COUNT(*) as attempts,
			SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) as correct
		FROM attempts
		GROUP BY item_key
		HAVING COUNT(*) >= 2
		ORDER BY CAST(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) AS FLOAT) / COUNT(*) ASC,
			attempts DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MissedItem
	for rows.Next() {
		var item models.MissedItem
		if err := rows.Scan(&item.ItemKey, &item.Attempts, &item.Correct); err != nil {
			return nil, err
		}
		if item.Attempts > 0 {
			item.SuccessRate = float64(item.Correct) / float64(item.Attempts)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AccuracyByGame returns correct and total attempt counts per game
func (r *AttemptRepository) AccuracyByGame() (map[models.GameID][2]int, error) {
	query := `
		SELECT game,
			SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) as correct,
			COUNT(*) as total
		FROM attempts
		GROUP BY game
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.GameID][2]int)
	for rows.Next() {
		var game string
		var correct, total int
		if err := rows.Scan(&game, &correct, &total); err != nil {
			return nil, err
		}
		out[models.GameID(game)] = [2]int{correct, total}
	}
	return out, rows.Err()
}
