package catalog

import (
	"testing"

	"github.com/example/korbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsAreOrderedByRankThenID(t *testing.T) {
	snapshot := New(nil, []models.Word{
		{ID: 3, Word: "집", Translation: "дом", Level: 1, Rank: 2},
		{ID: 1, Word: "물", Translation: "вода", Level: 1, Rank: 1},
		{ID: 5, Word: "불", Translation: "огонь", Level: 1, Rank: 2},
		{ID: 2, Word: "사람", Translation: "человек", Level: 2, Rank: 1},
	})

	level1 := snapshot.Words(1)
	require.Len(t, level1, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{level1[0].ID, level1[1].ID, level1[2].ID})

	level2 := snapshot.Words(2)
	require.Len(t, level2, 1)
	assert.Equal(t, "사람", level2[0].Word)

	assert.Empty(t, snapshot.Words(3))
}

func TestWordByID(t *testing.T) {
	snapshot := New(nil, []models.Word{
		{ID: 7, Word: "책", Translation: "книга", Level: 1, Rank: 1},
	})

	w, ok := snapshot.WordByID(7)
	require.True(t, ok)
	assert.Equal(t, "книга", w.Translation)

	_, ok = snapshot.WordByID(8)
	assert.False(t, ok)
}

func TestLetterLookups(t *testing.T) {
	snapshot := New([]models.Letter{
		{ID: 1, Glyph: "ㄱ", ExampleWord: "가다", Position: 0},
		{ID: 2, Glyph: "ㄴ", ExampleWord: "나무", Position: 1},
	}, nil)

	letters := snapshot.Letters()
	require.Len(t, letters, 2)
	assert.Equal(t, "ㄱ", letters[0].Glyph)

	l, ok := snapshot.LetterByGlyph("ㄴ")
	require.True(t, ok)
	assert.Equal(t, "나무", l.ExampleWord)

	_, ok = snapshot.LetterByGlyph("ㅁ")
	assert.False(t, ok)
}
