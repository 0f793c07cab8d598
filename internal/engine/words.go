package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/korbot/pkg/models"
)

var answerKeyboard = Keyboard{
	{"1", "2", "3"},
	{"Выйти"},
}

// startLearnWords opens the vocabulary sequencer for one level: filter out
// learned words, resume from the persisted cursor and present a question.
func (e *Engine) startLearnWords(ctx context.Context, userID int64, sess *session, level int) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("start learn words: %w: %v", ErrContentUnavailable, err)
	}

	all := e.catalog.Words(level)
	if len(all) == 0 {
		e.say(ctx, userID, fmt.Sprintf("На уровне %d пока нет слов. 😢", level), menuKeyboard)
		return nil
	}

	var queue []int64
	for _, w := range all {
		if !progress.HasLearned(w.ID) {
			queue = append(queue, w.ID)
		}
	}
	if len(queue) == 0 {
		e.say(ctx, userID, fmt.Sprintf("Вы уже изучили все слова уровня %d! 🎉", level), menuKeyboard)
		return nil
	}

	cursor := progress.LevelCursor[level]
	if cursor < 0 || cursor >= len(queue) {
		cursor = 0
	}

	sess.mode = ModeLearnWords
	sess.level = level
	sess.queue = queue
	sess.cursor = cursor
	sess.wordsSinceCheck = 0
	sess.recentLearned = nil

	return e.presentWord(ctx, userID, sess)
}

// presentWord shows the word at the current cursor as a multiple-choice
// question, or finishes the level when the queue is exhausted.
func (e *Engine) presentWord(ctx context.Context, userID int64, sess *session) error {
	if sess.cursor >= len(sess.queue) {
		sess.resetTransient()
		e.say(ctx, userID, "Вы изучили все слова на этом уровне! 🎉", menuKeyboard)
		return nil
	}

	word, ok := e.catalog.WordByID(sess.queue[sess.cursor])
	if !ok {
		return e.staleReset(ctx, userID, sess, "queued word missing from catalog")
	}

	options := e.buildOptions(word)
	sess.pending = &pendingAnswer{
		WordID:  word.ID,
		Correct: word.Translation,
		Options: options,
	}

	e.show(ctx, userID, word.Image, fmt.Sprintf("Изучим слово: %s", word.Word), nil)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Слово: %s\n\nВарианты:\n", word.Word))
	for i, option := range options {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, option))
	}
	sb.WriteString(fmt.Sprintf("\nВыбери правильный перевод (введи номер) или нажми 'Выйти':\n\nПрогресс: %d из %d слов 🚀",
		sess.cursor+1, len(sess.queue)))
	e.say(ctx, userID, sb.String(), answerKeyboard)
	return nil
}

// buildOptions assembles the answer list: the correct translation plus up
// to two distractors drawn from the same level. With fewer than two
// distinct distractors available the list degrades gracefully.
func (e *Engine) buildOptions(word models.Word) []string {
	seen := map[string]bool{word.Translation: true}
	var pool []string
	for _, w := range e.catalog.Words(word.Level) {
		if w.ID == word.ID || seen[w.Translation] {
			continue
		}
		seen[w.Translation] = true
		pool = append(pool, w.Translation)
	}
	e.shuffle(pool)
	if len(pool) > 2 {
		pool = pool[:2]
	}

	options := append([]string{word.Translation}, pool...)
	e.shuffle(options)
	return options
}

// handleWordAnswer grades a multiple-choice selection. The store delta is
// applied before the session advances so a failed write leaves the event
// safely retriable.
func (e *Engine) handleWordAnswer(ctx context.Context, userID int64, sess *session, input string) error {
	if sess.pending == nil {
		return e.staleReset(ctx, userID, sess, "no pending question")
	}
	pending := sess.pending

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(pending.Options) {
		// malformed choice: re-prompt, no state change
		e.say(ctx, userID, "Пожалуйста, выбери номер правильного варианта.", answerKeyboard)
		return nil
	}

	if pending.Options[choice-1] != pending.Correct {
		if err := e.store.ApplyDelta(ctx, userID, models.ProgressDelta{ScoreDelta: -5}); err != nil {
			e.say(ctx, userID, msgRetry, nil)
			return fmt.Errorf("grade wrong answer: %w: %v", ErrContentUnavailable, err)
		}
		hint := string([]rune(pending.Correct)[0])
		e.say(ctx, userID, fmt.Sprintf("❌ Неправильно. Подсказка: первая буква — '%s'.\nПопробуй ещё раз:", hint), answerKeyboard)
		// pending stays armed so the same question can be retried
		return nil
	}

	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("grade correct answer: %w: %v", ErrContentUnavailable, err)
	}

	// +10 applies even when the word is already in the learned set; the
	// set insert itself is idempotent
	wordID := pending.WordID
	delta := models.ProgressDelta{
		ScoreDelta:    10,
		LearnedWordID: &wordID,
		LevelCursor:   &models.LevelCursorUpdate{Level: sess.level, Cursor: sess.cursor + 1},
	}
	if err := e.store.ApplyDelta(ctx, userID, delta); err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("grade correct answer: %w: %v", ErrContentUnavailable, err)
	}

	sess.pending = nil
	sess.cursor++
	sess.wordsSinceCheck++
	sess.recentLearned = append(sess.recentLearned, wordID)
	if len(sess.recentLearned) > e.cfg.RecentWindow {
		sess.recentLearned = sess.recentLearned[len(sess.recentLearned)-e.cfg.RecentWindow:]
	}

	e.say(ctx, userID, fmt.Sprintf("✅ Правильно! Слово добавлено в твой словарь!\n💯 Твой счёт: %d баллов.", progress.Score+10), nil)

	if sess.wordsSinceCheck >= e.cfg.CheckInterval {
		sess.wordsSinceCheck = 0
		if e.startSpellingProbe(ctx, userID, sess) {
			return nil
		}
		// nothing to probe, keep the vocabulary flow moving
	}

	return e.presentWord(ctx, userID, sess)
}
