package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/korbot/pkg/models"
)

// startGame builds the working set for a translation round: the currently
// loaded dictionary words united with the full learned history, deduplicated
// by word text and shuffled.
func (e *Engine) startGame(ctx context.Context, userID int64, sess *session) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("start game: %w: %v", ErrContentUnavailable, err)
	}

	seen := make(map[string]bool)
	var pool []models.Word
	add := func(id int64) {
		w, ok := e.catalog.WordByID(id)
		if !ok || seen[w.Word] {
			return
		}
		seen[w.Word] = true
		pool = append(pool, w)
	}

	for _, id := range sess.loadedWords {
		add(id)
	}
	learned := make([]int64, 0, len(progress.Learned))
	for id := range progress.Learned {
		learned = append(learned, id)
	}
	sort.Slice(learned, func(i, j int) bool { return learned[i] < learned[j] })
	for _, id := range learned {
		add(id)
	}

	if len(pool) == 0 {
		e.say(ctx, userID, "❌ Нет слов для игры. Выберите другой уровень.", menuKeyboard)
		return nil
	}

	e.shuffleWords(pool)
	sess.clearMenuFlags()
	sess.mode = ModeGame
	sess.game = &gameState{Queue: pool}

	e.say(ctx, userID, "🎮 Начинаем игру 'Переводчик'!\n\n"+
		"❓ Как играть:\n"+
		"1. Я покажу слово на русском\n"+
		"2. Ты пишешь перевод на корейском\n"+
		"3. Сразу проверяем результат!\n\n"+
		"🏆 Постарайся набрать как можно больше правильных ответов подряд!\n"+
		"Для выхода нажми 'Стоп 🛑'", Keyboard{{cmdStop}})

	return e.presentGameWord(ctx, userID, sess)
}

// presentGameWord shows the next translation prompt or finishes the round
func (e *Engine) presentGameWord(ctx context.Context, userID int64, sess *session) error {
	game := sess.game
	if game == nil {
		return e.staleReset(ctx, userID, sess, "no game round in flight")
	}
	if game.Cursor >= len(game.Queue) {
		return e.finishGame(ctx, userID, sess)
	}

	word := game.Queue[game.Cursor]
	e.say(ctx, userID, fmt.Sprintf("Слово: %s\n📝 Уровень: %d\n\n✏️ Напиши перевод на корейском:",
		word.Translation, word.Level), Keyboard{{cmdStop}})
	return nil
}

// handleGameAnswer grades one free-text game answer verbatim and advances
// the round. The stop command ends the round immediately.
func (e *Engine) handleGameAnswer(ctx context.Context, userID int64, sess *session, input string) error {
	if sess.game == nil {
		return e.staleReset(ctx, userID, sess, "no game round in flight")
	}
	if input == cmdStop {
		return e.finishGame(ctx, userID, sess)
	}

	game := sess.game
	if game.Cursor >= len(game.Queue) {
		return e.finishGame(ctx, userID, sess)
	}
	word := game.Queue[game.Cursor]

	// a bare number is a leftover from the multiple-choice habit
	if _, err := strconv.Atoi(input); err == nil {
		e.say(ctx, userID, "✏️ Напиши перевод на корейском:", Keyboard{{cmdStop}})
		return nil
	}

	var msg string
	if input == word.Word {
		game.Streak++
		example := "(Нет примера)"
		if list := word.ExampleList(); len(list) > 0 {
			example = list[e.intn(len(list))]
		}
		msg = fmt.Sprintf("✅ Правильно! Твой счет: %d\n🇰🇷 Ответ: %s\n💡 Пример: %s",
			game.Streak, word.Word, example)
	} else {
		romanization := word.Romanization
		if romanization == "" {
			romanization = "Нет транскрипции"
		}
		msg = fmt.Sprintf("❌ Ошибка. Правильный ответ: %s\n📌 Запомни: %s (%s)",
			word.Word, word.Word, romanization)
	}
	game.Cursor++

	e.say(ctx, userID, msg, nil)
	return e.presentGameWord(ctx, userID, sess)
}

// finishGame reports one of the three closing tiers and clears the round
func (e *Engine) finishGame(ctx context.Context, userID int64, sess *session) error {
	game := sess.game
	if game == nil {
		return e.staleReset(ctx, userID, sess, "no game round to finish")
	}

	correct := game.Streak
	total := len(game.Queue)

	var emoji, comment string
	switch {
	case correct == total:
		emoji = "🏆"
		comment = "Идеальный результат! Ты настоящий полиглот!"
	case float64(correct) >= float64(total)*0.8:
		emoji = "🎉"
		comment = "Отличный результат! Почти идеально!"
	default:
		emoji = "💪"
		comment = "Хорошая попытка! Продолжай практиковаться!"
	}

	sess.game = nil
	sess.mode = ModeMenu

	e.say(ctx, userID, fmt.Sprintf("%s Игра завершена!\n\n📊 Результат: %d из %d\n%s\n\nВыбери следующее действие:",
		emoji, correct, total, comment), Keyboard{{cmdReplay, "Выйти"}})
	return nil
}
