package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuStubSectionsStayInMenu(t *testing.T) {
	e, _ := newTestEngine(t, newFakeStore())
	ctx := context.Background()

	for _, label := range []string{"Разговорные фразы", "Грамматика", "Подготовка к ТОПИКу"} {
		require.NoError(t, e.HandleEvent(ctx, 50, label))
		assert.Equal(t, ModeMenu, sessionOf(e, 50).mode, "label %q", label)
	}
}

func TestMenuHangulSectionOffersBothPaths(t *testing.T) {
	e, p := newTestEngine(t, newFakeStore())

	require.NoError(t, e.HandleEvent(context.Background(), 51, "Хангыль"))

	assert.Contains(t, p.lastText(), "Хангыль")
	assert.Equal(t, ModeMenu, sessionOf(e, 51).mode, "the section screen is still the menu")
}

func TestMenuLevelDigitNeedsAnArmedPrompt(t *testing.T) {
	e, p := newTestEngine(t, newFakeStore())
	ctx := context.Background()

	// a bare digit with no level prompt armed is rejected
	require.NoError(t, e.HandleEvent(ctx, 52, "2"))
	assert.Equal(t, msgBadInput, p.lastText())
	assert.Equal(t, ModeMenu, sessionOf(e, 52).mode)

	// armed by the menu label, the same digit starts the sequencer
	require.NoError(t, e.HandleEvent(ctx, 52, "Учить новые слова"))
	assert.True(t, sessionOf(e, 52).awaitLevelPick)
	require.NoError(t, e.HandleEvent(ctx, 52, "2"))
	assert.Equal(t, ModeLearnWords, sessionOf(e, 52).mode)
	assert.False(t, sessionOf(e, 52).awaitLevelPick)
}

func TestDictionaryEmpty(t *testing.T) {
	e, p := newTestEngine(t, newFakeStore())

	require.NoError(t, e.HandleEvent(context.Background(), 53, "Мой словарь"))

	assert.Contains(t, p.lastText(), "Вы пока не изучили ни одного слова")
	assert.False(t, sessionOf(e, 53).awaitDictLevel)
}

func TestDictionaryListsLearnedWordsOfLevel(t *testing.T) {
	store := newFakeStore()
	store.record(54).Learned[1] = true
	store.record(54).Learned[3] = true
	store.record(54).Learned[6] = true
	e, p := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.HandleEvent(ctx, 54, "Мой словарь"))
	assert.Contains(t, p.lastText(), "Выберите уровень слов")
	assert.True(t, sessionOf(e, 54).awaitDictLevel)

	require.NoError(t, e.HandleEvent(ctx, 54, "2"))

	listing := p.lastText()
	assert.Contains(t, listing, "Изучено слов: 2")
	assert.Contains(t, listing, "물 — вода")
	assert.Contains(t, listing, "집 — дом")
	assert.NotContains(t, listing, "사람", "a level-3 word does not belong to the level-2 view")
	assert.Equal(t, []int64{1, 3}, sessionOf(e, 54).loadedWords)
}

func TestDictionaryLevelWithoutLearnedWords(t *testing.T) {
	store := newFakeStore()
	store.record(55).Learned[6] = true
	e, p := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.HandleEvent(ctx, 55, "Мой словарь"))
	require.NoError(t, e.HandleEvent(ctx, 55, "2"))

	assert.Contains(t, p.lastText(), "На уровне 2 пока нет изученных слов")
}

func TestDictionaryLevelPickIsRetriable(t *testing.T) {
	store := newFakeStore()
	store.record(59).Learned[1] = true
	e, p := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.HandleEvent(ctx, 59, "Мой словарь"))
	require.True(t, sessionOf(e, 59).awaitDictLevel)

	store.fail = true
	err := e.HandleEvent(ctx, 59, "2")
	require.ErrorIs(t, err, ErrContentUnavailable)
	assert.True(t, sessionOf(e, 59).awaitDictLevel, "the level prompt survives the failure")

	store.fail = false
	require.NoError(t, e.HandleEvent(ctx, 59, "2"))
	assert.Contains(t, p.lastText(), "Изучено слов: 1")
	assert.False(t, sessionOf(e, 59).awaitDictLevel)
}

func TestClearDictionaryRoundTrip(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(56)

	enterLevel(t, e, userID, 2)
	answerVocab(t, e, p, userID, true)
	require.Equal(t, 1, store.learnedCount(userID))

	require.NoError(t, e.HandleEvent(ctx, userID, "Выйти"))
	require.NoError(t, e.ClearDictionary(ctx, userID))

	assert.Equal(t, 0, store.learnedCount(userID))
	assert.Contains(t, p.lastText(), "Ваш словарь очищен")

	require.NoError(t, e.HandleEvent(ctx, userID, "Мой словарь"))
	assert.Contains(t, p.lastText(), "Вы пока не изучили ни одного слова")

	// the score survives the wipe
	assert.Equal(t, 10, store.score(userID))
}

func TestResetScore(t *testing.T) {
	store := newFakeStore()
	store.record(57).Score = -35
	e, p := newTestEngine(t, store)

	require.NoError(t, e.ResetScore(context.Background(), 57))

	assert.Equal(t, 0, store.score(57))
	assert.Contains(t, p.lastText(), "обнулён")
}

func TestBackReturnsToMenu(t *testing.T) {
	store := newFakeStore()
	store.record(58).Learned[1] = true
	e, p := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.HandleEvent(ctx, 58, "Мой словарь"))
	require.NoError(t, e.HandleEvent(ctx, 58, "2"))
	require.NoError(t, e.HandleEvent(ctx, 58, "Назад 🔙"))

	assert.Contains(t, p.lastText(), "главное меню")
	assert.Equal(t, ModeMenu, sessionOf(e, 58).mode)
}
