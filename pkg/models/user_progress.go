package models

// UserProgress is the durable per-user learning record
type UserProgress struct {
	UserID             int64 `json:"user_id" db:"user_id"`
	Score              int   `json:"score" db:"score"` // may go negative
	CurrentLetterIndex int   `json:"current_letter_index" db:"current_letter_index"`

	// Learned is the set of word ids answered correctly at least once.
	// Grows monotonically, cleared only by an explicit dictionary reset.
	Learned map[int64]bool `json:"-" db:"-"`

	// LevelCursor is the resume offset into each level's word sequence.
	LevelCursor map[int]int `json:"-" db:"-"`
}

// HasLearned reports whether the word id is in the learned set
func (p *UserProgress) HasLearned(wordID int64) bool {
	return p.Learned[wordID]
}

// LevelCursorUpdate sets the resume offset for one level
type LevelCursorUpdate struct {
	Level  int
	Cursor int
}

// ProgressDelta describes one atomic progress mutation. Field groups are
// independent: nil pointers leave the corresponding fields untouched.
type ProgressDelta struct {
	ScoreDelta    int
	LearnedWordID *int64
	LetterIndex   *int
	LevelCursor   *LevelCursorUpdate
}
