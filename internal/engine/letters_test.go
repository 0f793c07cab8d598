package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterSequenceAdvancesOnlyOnExactAnswers(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(10)

	require.NoError(t, e.HandleEvent(ctx, userID, "Изучать буквы"))
	assert.True(t, p.contains("Прежде чем начать изучение Хангыля"), "category intro expected at position 0")
	assert.True(t, p.contains("Изучи букву: ㄱ"))
	assert.Equal(t, ModeLearnLetters, sessionOf(e, userID).mode)

	// wrong glyph re-prompts the same phase, nothing persisted
	require.NoError(t, e.HandleEvent(ctx, userID, "ㅋ"))
	assert.Contains(t, p.lastText(), "Неверно")
	assert.Equal(t, 0, store.letterIndex(userID))
	assert.Equal(t, phaseAwaitLetter, sessionOf(e, userID).phase)

	// correct glyph arms the example-word phase but does not advance yet
	require.NoError(t, e.HandleEvent(ctx, userID, "ㄱ"))
	assert.Contains(t, p.lastText(), "가다")
	assert.Equal(t, 0, store.letterIndex(userID))
	assert.Equal(t, phaseAwaitWord, sessionOf(e, userID).phase)

	// wrong example word re-prompts without advancing
	require.NoError(t, e.HandleEvent(ctx, userID, "나무"))
	assert.Contains(t, p.lastText(), "Неправильно")
	assert.Equal(t, 0, store.letterIndex(userID))

	// the exact example word advances the saved index by one and presents
	// the next letter
	p.reset()
	require.NoError(t, e.HandleEvent(ctx, userID, "가다"))
	assert.Equal(t, 1, store.letterIndex(userID))
	assert.True(t, p.contains("Изучи букву: ㄴ"))
	assert.Equal(t, phaseAwaitLetter, sessionOf(e, userID).phase)
}

func TestLetterCurriculumCompletion(t *testing.T) {
	store := newFakeStore()
	idx := len(fixtureLetters)
	store.record(42).CurrentLetterIndex = idx
	e, p := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.HandleEvent(ctx, 42, "Изучать буквы"))

	assert.Contains(t, p.lastText(), "изучили весь алфавит")
	sess := sessionOf(e, 42)
	assert.Equal(t, ModeMenu, sess.mode)
	assert.Equal(t, idx, store.letterIndex(42), "completion must not move the index")
}

func TestLetterCurriculumResumesFromSavedIndex(t *testing.T) {
	store := newFakeStore()
	store.record(42).CurrentLetterIndex = 2
	e, p := newTestEngine(t, store)

	require.NoError(t, e.HandleEvent(context.Background(), 42, "Изучать буквы"))

	assert.True(t, p.contains("Изучи букву: ㄷ"))
	assert.False(t, p.contains("Изучи букву: ㄱ"))
}

func TestLetterLookupIsStateless(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(11)

	require.NoError(t, e.HandleEvent(ctx, userID, "Что за буква?"))
	assert.Equal(t, ModeLetterLookup, sessionOf(e, userID).mode)

	require.NoError(t, e.HandleEvent(ctx, userID, "ㄴ"))
	assert.Contains(t, p.lastText(), "Буква: ㄴ")
	assert.Contains(t, p.lastText(), "나무")

	require.NoError(t, e.HandleEvent(ctx, userID, "ㅉ"))
	assert.Contains(t, p.lastText(), "Буква не найдена")

	// lookups leave the mode armed and touch no progress
	assert.Equal(t, ModeLetterLookup, sessionOf(e, userID).mode)
	assert.Equal(t, 0, store.letterIndex(userID))
	assert.Equal(t, 0, store.score(userID))
}
