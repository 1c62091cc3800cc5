package statestore

import (
	"database/sql"
	"errors"

	"otiyot/internal/database"
)

// SQLStore persists state in the game_state table
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store backed by the given database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT state_value FROM game_state WHERE state_key = ?`
	err := s.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStore) Put(key, value string) error {
	// Update first, insert when the key is new
	updateQuery := `UPDATE game_state SET state_value = ?, updated_at = CURRENT_TIMESTAMP WHERE state_key = ?`
	result, err := s.db.Exec(updateQuery, value, key)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		insertQuery := `INSERT INTO game_state (state_key, state_value) VALUES (?, ?)`
		_, err = s.db.Exec(insertQuery, key, value)
		return err
	}
	return nil
}

func (s *SQLStore) Delete(key string) error {
	query := `DELETE FROM game_state WHERE state_key = ?`
	_, err := s.db.Exec(query, key)
	return err
}
