package repository

import (
	"errors"

	"wordrush/internal/database"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// WordRepository handles dictionary word database operations
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Exists reports whether a normalized word is in the dictionary
func (r *WordRepository) Exists(normalized string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM words WHERE word = ?"
	if err := r.db.QueryRow(query, normalized).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// BulkInsert inserts normalized words, skipping ones already present.
// Returns the number of rows actually inserted.
func (r *WordRepository) BulkInsert(words []string) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := r.db.Dialect.InsertIgnoreQuery("words", "word")
	var inserted int64
	for _, w := range words {
		result, err := tx.Exec(query, w)
		if err != nil {
			return 0, err
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// AllWords retrieves every dictionary word, ordered alphabetically
func (r *WordRepository) AllWords() ([]string, error) {
	rows, err := r.db.Query("SELECT word FROM words ORDER BY word ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// Count returns the dictionary size
func (r *WordRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count)
	return count, err
}
