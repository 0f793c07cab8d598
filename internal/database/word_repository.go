package database

import (
	"fmt"

	"github.com/example/korbot/pkg/models"
)

// WordRepository handles database operations for vocabulary words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all words ordered by level and importance rank
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, `SELECT * FROM words ORDER BY level, rank, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// GetByLevel returns words of one level ordered by importance rank
func (r *WordRepository) GetByLevel(level int) ([]models.Word, error) {
	var words []models.Word
	query := DB.Rebind(`SELECT * FROM words WHERE level = ? ORDER BY rank, id`)
	err := DB.Select(&words, query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by level: %v", err)
	}
	return words, nil
}

// Upsert inserts a word or updates the existing entry with the same text
func (r *WordRepository) Upsert(word *models.Word) error {
	query := DB.Rebind(`
		INSERT INTO words (word, translation, level, rank, image, romanization, examples)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (word) DO UPDATE SET
			translation = excluded.translation,
			level = excluded.level,
			rank = excluded.rank,
			image = excluded.image,
			romanization = excluded.romanization,
			examples = excluded.examples
	`)
	_, err := DB.Exec(query,
		word.Word,
		word.Translation,
		word.Level,
		word.Rank,
		word.Image,
		word.Romanization,
		word.Examples,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert word %q: %v", word.Word, err)
	}
	return nil
}
