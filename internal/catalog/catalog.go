// Package catalog provides an immutable snapshot of the learning content.
// The snapshot is loaded once per run so a catalog change can never shift
// sequences under an active session.
package catalog

import (
	"sort"

	"github.com/example/korbot/internal/database"
	"github.com/example/korbot/pkg/models"
)

// Snapshot is a read-only view of the alphabet and vocabulary catalogs
type Snapshot struct {
	letters      []models.Letter
	byGlyph      map[string]models.Letter
	wordsByLevel map[int][]models.Word
	wordByID     map[int64]models.Word
}

// New builds a snapshot from already-loaded entries. Words are ordered by
// importance rank with the id as a stable tiebreak.
func New(letters []models.Letter, words []models.Word) *Snapshot {
	s := &Snapshot{
		letters:      letters,
		byGlyph:      make(map[string]models.Letter, len(letters)),
		wordsByLevel: make(map[int][]models.Word),
		wordByID:     make(map[int64]models.Word, len(words)),
	}
	for _, l := range letters {
		s.byGlyph[l.Glyph] = l
	}
	for _, w := range words {
		s.wordsByLevel[w.Level] = append(s.wordsByLevel[w.Level], w)
		s.wordByID[w.ID] = w
	}
	for level := range s.wordsByLevel {
		list := s.wordsByLevel[level]
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Rank != list[j].Rank {
				return list[i].Rank < list[j].Rank
			}
			return list[i].ID < list[j].ID
		})
	}
	return s
}

// Load reads the full catalog from the database into a snapshot
func Load() (*Snapshot, error) {
	letters, err := database.NewLetterRepository().GetAll()
	if err != nil {
		return nil, err
	}
	words, err := database.NewWordRepository().GetAll()
	if err != nil {
		return nil, err
	}
	return New(letters, words), nil
}

// Letters returns the alphabet in curriculum order
func (s *Snapshot) Letters() []models.Letter {
	return s.letters
}

// LetterByGlyph looks up a letter by its exact glyph
func (s *Snapshot) LetterByGlyph(glyph string) (models.Letter, bool) {
	l, ok := s.byGlyph[glyph]
	return l, ok
}

// Words returns the words of one level ordered by importance rank
func (s *Snapshot) Words(level int) []models.Word {
	return s.wordsByLevel[level]
}

// WordByID looks up a word by id
func (s *Snapshot) WordByID(id int64) (models.Word, bool) {
	w, ok := s.wordByID[id]
	return w, ok
}
