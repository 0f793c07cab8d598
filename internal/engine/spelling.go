package engine

import (
	"context"
	"fmt"
)

// startSpellingProbe interleaves a free-typing check of one recently
// learned word. Returns false when the window holds nothing to probe, in
// which case the vocabulary flow continues uninterrupted.
func (e *Engine) startSpellingProbe(ctx context.Context, userID int64, sess *session) bool {
	if len(sess.recentLearned) == 0 {
		return false
	}

	id := sess.recentLearned[e.intn(len(sess.recentLearned))]
	word, ok := e.catalog.WordByID(id)
	if !ok {
		return false
	}

	sess.probe = &spellingProbe{
		WordID:      word.ID,
		Word:        word.Word,
		Translation: word.Translation,
		Image:       word.Image,
	}
	sess.mode = ModeSpellingCheck

	if word.Image != "" {
		e.show(ctx, userID, word.Image, "📝 Напиши это слово на корейском:", Keyboard{{"Выйти"}})
	} else {
		e.say(ctx, userID, fmt.Sprintf("📝 Слово: %s\nНапиши его на корейском:", word.Translation), Keyboard{{"Выйти"}})
	}
	return true
}

// handleSpellingAnswer compares the event verbatim to the probed word.
// Either outcome clears the probe and resumes the vocabulary sequencer at
// the current cursor; the probe never consumes a catalog word.
func (e *Engine) handleSpellingAnswer(ctx context.Context, userID int64, sess *session, input string) error {
	probe := sess.probe
	sess.probe = nil
	sess.mode = ModeLearnWords

	if probe == nil {
		e.say(ctx, userID, "Проверка завершена, продолжаем обучение!", nil)
		return e.presentWord(ctx, userID, sess)
	}

	if input == probe.Word {
		e.say(ctx, userID, "✅ Верно! Молодец!", nil)
	} else {
		e.say(ctx, userID, fmt.Sprintf("❌ Неверно. Правильный ответ: %s", probe.Word), nil)
	}

	return e.presentWord(ctx, userID, sess)
}
