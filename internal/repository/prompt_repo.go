package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"wordrush/internal/database"
	"wordrush/internal/models"
)

// PromptRepository handles prompt catalog database operations
type PromptRepository struct {
	db *database.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *database.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Count returns the catalog size
func (r *PromptRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count)
	return count, err
}

// SampleRandom draws up to n distinct prompts uniformly at random from the
// catalog. Returns fewer than n when the catalog is smaller than n.
func (r *PromptRepository) SampleRandom(n int) ([]models.Prompt, error) {
	query := fmt.Sprintf(
		"SELECT id, description, rule, valid_words_count FROM prompts ORDER BY %s LIMIT ?",
		r.db.Dialect.RandomFunc(),
	)
	rows, err := r.db.Query(query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// All retrieves every prompt in catalog order
func (r *PromptRepository) All() ([]models.Prompt, error) {
	rows, err := r.db.Query("SELECT id, description, rule, valid_words_count FROM prompts ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// GetOrCreate inserts a prompt unless one with the same description and rule
// already exists. Returns the prompt and whether it was created.
func (r *PromptRepository) GetOrCreate(description string, rule models.Rule) (*models.Prompt, bool, error) {
	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return nil, false, fmt.Errorf("marshal rule: %w", err)
	}

	var existing models.Prompt
	var existingRule []byte
	var count sql.NullInt64
	query := "SELECT id, description, rule, valid_words_count FROM prompts WHERE description = ? AND rule = ?"
	err = r.db.QueryRow(query, description, string(ruleJSON)).Scan(
		&existing.ID, &existing.Description, &existingRule, &count,
	)
	if err == nil {
		if err := json.Unmarshal(existingRule, &existing.Rule); err != nil {
			return nil, false, fmt.Errorf("unmarshal rule: %w", err)
		}
		if count.Valid {
			c := int(count.Int64)
			existing.ValidWordsCount = &c
		}
		return &existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	id, err := r.db.ExecReturningID(
		"INSERT INTO prompts (description, rule) VALUES (?, ?)",
		description, string(ruleJSON),
	)
	if err != nil {
		return nil, false, err
	}

	return &models.Prompt{ID: id, Description: description, Rule: rule}, true, nil
}

// UpdateValidWordsCount stores the recomputed match count hint for a prompt
func (r *PromptRepository) UpdateValidWordsCount(id int64, count int) error {
	_, err := r.db.Exec("UPDATE prompts SET valid_words_count = ? WHERE id = ?", count, id)
	return err
}

// scanPrompts reads prompt rows, decoding the JSON rule column
func scanPrompts(rows *sql.Rows) ([]models.Prompt, error) {
	var prompts []models.Prompt
	for rows.Next() {
		var p models.Prompt
		var ruleJSON []byte
		var count sql.NullInt64

		if err := rows.Scan(&p.ID, &p.Description, &ruleJSON, &count); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ruleJSON, &p.Rule); err != nil {
			return nil, fmt.Errorf("unmarshal rule for prompt %d: %w", p.ID, err)
		}
		if count.Valid {
			c := int(count.Int64)
			p.ValidWordsCount = &c
		}
		prompts = append(prompts, p)
	}

	return prompts, rows.Err()
}
