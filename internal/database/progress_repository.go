package database

import (
	"context"
	"fmt"

	"github.com/example/korbot/pkg/models"
)

// ProgressRepository handles the durable per-user learning record
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// GetOrCreate returns the user's progress record, creating a default row on
// first interaction.
func (r *ProgressRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserProgress, error) {
	insert := DB.Rebind(`INSERT INTO user_progress (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`)
	if _, err := DB.ExecContext(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to create progress row: %v", err)
	}

	progress := &models.UserProgress{
		Learned:     make(map[int64]bool),
		LevelCursor: make(map[int]int),
	}
	query := DB.Rebind(`SELECT user_id, score, current_letter_index FROM user_progress WHERE user_id = ?`)
	if err := DB.GetContext(ctx, progress, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}

	var learned []int64
	query = DB.Rebind(`SELECT word_id FROM learned_words WHERE user_id = ?`)
	if err := DB.SelectContext(ctx, &learned, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get learned words: %v", err)
	}
	for _, id := range learned {
		progress.Learned[id] = true
	}

	var cursors []struct {
		Level     int `db:"level"`
		NextIndex int `db:"next_index"`
	}
	query = DB.Rebind(`SELECT level, next_index FROM level_cursors WHERE user_id = ?`)
	if err := DB.SelectContext(ctx, &cursors, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get level cursors: %v", err)
	}
	for _, c := range cursors {
		progress.LevelCursor[c.Level] = c.NextIndex
	}

	return progress, nil
}

// ApplyDelta applies one progress mutation inside a single transaction.
// The learned-word insert is idempotent: re-learning a word is a no-op for
// the set while the score delta still applies.
func (r *ProgressRepository) ApplyDelta(ctx context.Context, userID int64, delta models.ProgressDelta) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if delta.ScoreDelta != 0 {
		query := tx.Rebind(`UPDATE user_progress SET score = score + ? WHERE user_id = ?`)
		if _, err := tx.ExecContext(ctx, query, delta.ScoreDelta, userID); err != nil {
			return fmt.Errorf("failed to update score: %v", err)
		}
	}

	if delta.LetterIndex != nil {
		query := tx.Rebind(`UPDATE user_progress SET current_letter_index = ? WHERE user_id = ?`)
		if _, err := tx.ExecContext(ctx, query, *delta.LetterIndex, userID); err != nil {
			return fmt.Errorf("failed to update letter index: %v", err)
		}
	}

	if delta.LearnedWordID != nil {
		query := tx.Rebind(`INSERT INTO learned_words (user_id, word_id) VALUES (?, ?) ON CONFLICT (user_id, word_id) DO NOTHING`)
		if _, err := tx.ExecContext(ctx, query, userID, *delta.LearnedWordID); err != nil {
			return fmt.Errorf("failed to add learned word: %v", err)
		}
	}

	if delta.LevelCursor != nil {
		query := tx.Rebind(`
			INSERT INTO level_cursors (user_id, level, next_index) VALUES (?, ?, ?)
			ON CONFLICT (user_id, level) DO UPDATE SET next_index = excluded.next_index
		`)
		if _, err := tx.ExecContext(ctx, query, userID, delta.LevelCursor.Level, delta.LevelCursor.Cursor); err != nil {
			return fmt.Errorf("failed to update level cursor: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress delta: %v", err)
	}
	return nil
}

// ClearLearned empties the user's learned-word set
func (r *ProgressRepository) ClearLearned(ctx context.Context, userID int64) error {
	query := DB.Rebind(`DELETE FROM learned_words WHERE user_id = ?`)
	if _, err := DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear learned words: %v", err)
	}
	return nil
}
