package engine

import (
	"context"
	"fmt"

	"github.com/example/korbot/pkg/models"
)

// categoryIntros maps the fixed category-boundary indices of the alphabet
// curriculum to their one-time introduction messages.
var categoryIntros = map[int]string{
	0: `📚 Прежде чем начать изучение Хангыля, важно запомнить несколько правил:

1. Буквы формируются слева-направо и сверху-вниз. Например, ㄴ (н) + ㅕ (ё/йо) + ㄴ (н) = 년 (нйон) — год.
2. Не пугайтесь, если видите на письме, что перед гласной стоит кружочек. Это норма для написания гласных в начале слова и никак не влияет на произношение. Например, в слове 아버님 — «отец».
3. Помните, что произношение согласной зависит от положения в слове и «соседства» с другими буквами.

Теперь давай начнем с первых букв:`,
	10: "Обычные согласные — это основные согласные звуки, которые часто используются в словах.",
	20: "Придыхательные согласные произносятся с выдохом и образуют уникальные звуки.",
	25: "Дифтонги — сложные гласные, которые формируются из двух букв и произносятся как один звук.",
	35: "Сдвоенные согласные — это буквы, которые произносятся в два раза сильнее обычных.",
}

// startLetters enters the letter sequencer at the user's saved position
func (e *Engine) startLetters(ctx context.Context, userID int64, sess *session) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("start letters: %w: %v", ErrContentUnavailable, err)
	}
	return e.presentLetter(ctx, userID, sess, progress.CurrentLetterIndex)
}

// presentLetter shows the letter at the given index and arms the two-phase
// confirmation, or finishes the curriculum when the index runs past the end.
func (e *Engine) presentLetter(ctx context.Context, userID int64, sess *session, index int) error {
	letters := e.catalog.Letters()
	if len(letters) == 0 {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("present letter: %w: empty alphabet catalog", ErrContentUnavailable)
	}

	if index >= len(letters) {
		sess.resetTransient()
		e.say(ctx, userID, "Поздравляем! Вы изучили весь алфавит! 🎉", menuKeyboard)
		return nil
	}

	// presentation-only side effect at the category boundaries
	if intro, ok := categoryIntros[index]; ok {
		e.say(ctx, userID, intro, nil)
	}

	letter := letters[index]
	sess.mode = ModeLearnLetters
	sess.phase = phaseAwaitLetter

	caption := fmt.Sprintf("Изучи букву: %s %s\n%s", letter.Glyph, letter.Sound, letter.Notes)
	e.show(ctx, userID, letter.Image, caption, nil)
	e.say(ctx, userID, fmt.Sprintf("Пример слова: %s (%s) — %s",
		letter.ExampleWord, letter.Transliteration, letter.Translation), nil)
	e.say(ctx, userID, "➡️ Напиши эту букву:", Keyboard{{"Выйти"}})
	return nil
}

// handleLetterAnswer grades the two-phase letter confirmation. Mismatches
// re-prompt the same phase without advancing; the saved index moves only
// after both the glyph and the example word were typed exactly.
func (e *Engine) handleLetterAnswer(ctx context.Context, userID int64, sess *session, input string) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("letter answer: %w: %v", ErrContentUnavailable, err)
	}

	letters := e.catalog.Letters()
	index := progress.CurrentLetterIndex
	if index >= len(letters) {
		sess.resetTransient()
		e.say(ctx, userID, "Поздравляем! Вы изучили весь алфавит! 🎉", menuKeyboard)
		return nil
	}
	letter := letters[index]

	switch sess.phase {
	case phaseAwaitLetter:
		if input != letter.Glyph {
			e.say(ctx, userID, "❌ Неверно. Попробуй еще раз. Напиши букву:", nil)
			return nil
		}
		sess.phase = phaseAwaitWord
		e.say(ctx, userID, "✅ Правильно! Напиши пример слова.", nil)
		e.say(ctx, userID, fmt.Sprintf("➡️ Напиши слово с буквой %s: %s", letter.Glyph, letter.ExampleWord), nil)
		return nil

	case phaseAwaitWord:
		if input != letter.ExampleWord {
			e.say(ctx, userID, fmt.Sprintf("❌ Неправильно. Попробуй ещё раз. Напиши слово: %s", letter.ExampleWord), nil)
			return nil
		}
		next := index + 1
		if err := e.store.ApplyDelta(ctx, userID, models.ProgressDelta{LetterIndex: &next}); err != nil {
			e.say(ctx, userID, msgRetry, nil)
			return fmt.Errorf("advance letter: %w: %v", ErrContentUnavailable, err)
		}
		e.say(ctx, userID, "✅ Правильно! 🎉", nil)
		return e.presentLetter(ctx, userID, sess, next)
	}

	return e.staleReset(ctx, userID, sess, "letter phase not armed")
}

// handleLetterLookup answers "what is this letter" queries. It is a
// stateless side-channel: no progress is touched.
func (e *Engine) handleLetterLookup(ctx context.Context, userID int64, sess *session, input string) error {
	letter, ok := e.catalog.LetterByGlyph(input)
	if !ok {
		e.say(ctx, userID, "Буква не найдена. Попробуй ещё раз.", Keyboard{{"Выйти"}})
		return nil
	}
	e.say(ctx, userID, fmt.Sprintf(
		"Буква: %s %s\nОписание: %s\nПример слова: %s (%s) — %s",
		letter.Glyph, letter.Sound, letter.Notes,
		letter.ExampleWord, letter.Transliteration, letter.Translation,
	), Keyboard{{"Выйти"}})
	return nil
}
