package database

import (
	"fmt"

	"github.com/example/korbot/pkg/models"
)

// LetterRepository handles database operations for alphabet entries
type LetterRepository struct{}

// NewLetterRepository creates a new repository instance
func NewLetterRepository() *LetterRepository {
	return &LetterRepository{}
}

// GetAll returns the full alphabet in curriculum order
func (r *LetterRepository) GetAll() ([]models.Letter, error) {
	var letters []models.Letter
	err := DB.Select(&letters, "SELECT * FROM alphabet ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get letters: %v", err)
	}
	return letters, nil
}

// Upsert inserts a letter or updates the existing entry with the same glyph
func (r *LetterRepository) Upsert(letter *models.Letter) error {
	query := DB.Rebind(`
		INSERT INTO alphabet (glyph, example_word, transliteration, translation, sound, notes, image, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (glyph) DO UPDATE SET
			example_word = excluded.example_word,
			transliteration = excluded.transliteration,
			translation = excluded.translation,
			sound = excluded.sound,
			notes = excluded.notes,
			image = excluded.image,
			position = excluded.position
	`)
	_, err := DB.Exec(query,
		letter.Glyph,
		letter.ExampleWord,
		letter.Transliteration,
		letter.Translation,
		letter.Sound,
		letter.Notes,
		letter.Image,
		letter.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert letter %q: %v", letter.Glyph, err)
	}
	return nil
}
