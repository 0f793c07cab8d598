package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// learnLevel marks the ids as learned and loads the level-2 dictionary view,
// leaving the user one "Играть" away from a game round.
func learnLevel(t *testing.T, e *Engine, store *fakeStore, userID int64, ids ...int64) {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		store.mu.Lock()
		store.record(userID).Learned[id] = true
		store.mu.Unlock()
	}
	require.NoError(t, e.HandleEvent(ctx, userID, "Мой словарь"))
	require.NoError(t, e.HandleEvent(ctx, userID, "2"))
}

// playRound answers every remaining game word, correctly or not
func playRound(t *testing.T, e *Engine, userID int64, correct int) {
	t.Helper()
	ctx := context.Background()
	sess := sessionOf(e, userID)
	require.NotNil(t, sess.game)
	total := len(sess.game.Queue)
	for i := 0; i < total; i++ {
		word := sess.game.Queue[sess.game.Cursor]
		answer := word.Word
		if i >= correct {
			answer = "오답"
		}
		require.NoError(t, e.HandleEvent(ctx, userID, answer))
	}
}

func TestGamePerfectRound(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(40)

	learnLevel(t, e, store, userID, 1, 2, 3, 4, 5)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))

	sess := sessionOf(e, userID)
	require.Equal(t, ModeGame, sess.mode)
	require.NotNil(t, sess.game)
	assert.Len(t, sess.game.Queue, 5)
	assert.True(t, p.contains("Начинаем игру 'Переводчик'"))

	playRound(t, e, userID, 5)

	assert.True(t, p.contains("🏆 Игра завершена!"))
	assert.True(t, p.contains("Результат: 5 из 5"))
	assert.True(t, p.contains("Идеальный результат! Ты настоящий полиглот!"))
	sess = sessionOf(e, userID)
	assert.Nil(t, sess.game, "the round is cleared after the summary")
	assert.Equal(t, ModeMenu, sess.mode)
	assertInvariant(t, sess)
}

func TestGameTierAtEightyPercent(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(41)

	learnLevel(t, e, store, userID, 1, 2, 3, 4, 5)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))
	playRound(t, e, userID, 4)

	assert.True(t, p.contains("🎉 Игра завершена!"))
	assert.True(t, p.contains("Результат: 4 из 5"))
	assert.True(t, p.contains("Отличный результат! Почти идеально!"))
}

func TestGameTierBelowEightyPercent(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(42)

	learnLevel(t, e, store, userID, 1, 2, 3, 4, 5)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))
	playRound(t, e, userID, 2)

	assert.True(t, p.contains("💪 Игра завершена!"))
	assert.True(t, p.contains("Результат: 2 из 5"))
	assert.True(t, p.contains("Хорошая попытка! Продолжай практиковаться!"))
}

func TestGameStopEndsRoundImmediately(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(43)

	learnLevel(t, e, store, userID, 1, 2, 3)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))

	sess := sessionOf(e, userID)
	require.NotNil(t, sess.game)
	require.NoError(t, e.HandleEvent(ctx, userID, sess.game.Queue[0].Word))

	require.NoError(t, e.HandleEvent(ctx, userID, "Стоп 🛑"))

	assert.True(t, p.contains("Результат: 1 из 3"))
	sess = sessionOf(e, userID)
	assert.Nil(t, sess.game)
	assert.Equal(t, ModeMenu, sess.mode)
}

func TestGameWrongAnswerRevealsRomanization(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(44)

	learnLevel(t, e, store, userID, 2)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))

	require.NoError(t, e.HandleEvent(ctx, userID, "промах"))

	assert.True(t, p.contains("Правильный ответ: 불"))
	assert.True(t, p.contains("불 (bul)"))
}

func TestGameNumericAnswerReprompts(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(45)

	learnLevel(t, e, store, userID, 1, 2)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))

	sess := sessionOf(e, userID)
	cursorBefore := sess.game.Cursor
	streakBefore := sess.game.Streak

	require.NoError(t, e.HandleEvent(ctx, userID, "2"))

	assert.Contains(t, p.lastText(), "Напиши перевод на корейском")
	sess = sessionOf(e, userID)
	assert.Equal(t, cursorBefore, sess.game.Cursor, "a bare number must not advance the round")
	assert.Equal(t, streakBefore, sess.game.Streak)
}

func TestGameWithoutWordsRefusesToStart(t *testing.T) {
	store := newFakeStore()
	e, p := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(46)

	require.NoError(t, e.HandleEvent(ctx, userID, "играть"))

	assert.Contains(t, p.lastText(), "Нет слов для игры")
	sess := sessionOf(e, userID)
	assert.Equal(t, ModeMenu, sess.mode)
	assert.Nil(t, sess.game)
}

func TestGameDeduplicatesByWordText(t *testing.T) {
	store := newFakeStore()
	e, _ := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(47)

	// the loaded dictionary and the learned history overlap on ids 1..3
	learnLevel(t, e, store, userID, 1, 2, 3)
	store.mu.Lock()
	store.record(userID).Learned[6] = true
	store.mu.Unlock()

	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))

	sess := sessionOf(e, userID)
	require.NotNil(t, sess.game)
	assert.Len(t, sess.game.Queue, 4, "overlapping entries collapse to one per word text")
}

func TestReplayStartsAnotherRound(t *testing.T) {
	store := newFakeStore()
	e, _ := newTestEngine(t, store)
	ctx := context.Background()
	userID := int64(48)

	learnLevel(t, e, store, userID, 1, 2)
	require.NoError(t, e.HandleEvent(ctx, userID, "Играть"))
	playRound(t, e, userID, 2)
	require.Equal(t, ModeMenu, sessionOf(e, userID).mode)

	require.NoError(t, e.HandleEvent(ctx, userID, "Играть еще раз 🔄"))

	sess := sessionOf(e, userID)
	assert.Equal(t, ModeGame, sess.mode)
	require.NotNil(t, sess.game)
	assert.Zero(t, sess.game.Streak)
}
