package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/korbot/pkg/models"
)

// menuKeyboard is the main menu reply keyboard
var menuKeyboard = Keyboard{
	{"Хангыль", "Подготовка к ТОПИКу"},
	{"Мой словарь", "Учить новые слова"},
}

var hangulKeyboard = Keyboard{
	{"Изучать буквы", "Что за буква?"},
	{"Выйти"},
}

var levelKeyboard = Keyboard{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"Выйти"},
}

// showMenu presents the main menu
func (e *Engine) showMenu(ctx context.Context, userID int64) {
	e.say(ctx, userID, "Вы вернулись в главное меню. Выберите, что вам интересно: 👇", menuKeyboard)
}

// handleMenu routes fixed menu labels. An event matching no recognized
// action yields a fixed response without mutating state.
func (e *Engine) handleMenu(ctx context.Context, userID int64, sess *session, input string) error {
	switch input {
	case "Хангыль":
		sess.clearMenuFlags()
		e.say(ctx, userID, hangulIntro, hangulKeyboard)
		return nil
	case "Изучать буквы":
		sess.clearMenuFlags()
		return e.startLetters(ctx, userID, sess)
	case "Что за буква?":
		sess.clearMenuFlags()
		sess.mode = ModeLetterLookup
		e.say(ctx, userID, "Введи название буквы, и я покажу всю информацию о ней:", Keyboard{{"Выйти"}})
		return nil
	case "Разговорные фразы":
		sess.clearMenuFlags()
		e.say(ctx, userID, "Разговорные фразы — это круто! Скоро здесь появятся примеры. 💬", menuKeyboard)
		return nil
	case "Грамматика":
		sess.clearMenuFlags()
		e.say(ctx, userID, "Грамматика — это фундамент! Раздел пока наполняется. 📘", menuKeyboard)
		return nil
	case "Подготовка к ТОПИКу":
		sess.clearMenuFlags()
		e.say(ctx, userID, "Подготовка к ТОПИКу! Материалы скоро появятся. Удачи в изучении корейского языка! 📚💪", menuKeyboard)
		return nil
	case "Мой словарь":
		sess.clearMenuFlags()
		return e.showDictionary(ctx, userID, sess)
	case "Учить новые слова":
		sess.clearMenuFlags()
		sess.awaitLevelPick = true
		e.say(ctx, userID, "Выберите уровень слов или нажмите 'Выйти':", levelKeyboard)
		return nil
	case cmdBack:
		sess.clearMenuFlags()
		e.showMenu(ctx, userID)
		return nil
	case cmdReplay:
		return e.startGame(ctx, userID, sess)
	}

	if strings.ToLower(input) == cmdPlay {
		return e.startGame(ctx, userID, sess)
	}

	// the prompt flags are cleared only once the handler succeeds, so a
	// failed store read leaves the same level pick retriable
	if level, err := strconv.Atoi(input); err == nil && level >= 1 && level <= 6 {
		switch {
		case sess.awaitDictLevel:
			if err := e.showDictionaryLevel(ctx, userID, sess, level); err != nil {
				return err
			}
			sess.awaitDictLevel = false
			return nil
		case sess.awaitLevelPick:
			if err := e.startLearnWords(ctx, userID, sess, level); err != nil {
				return err
			}
			sess.awaitLevelPick = false
			return nil
		}
	}

	e.say(ctx, userID, msgBadInput, menuKeyboard)
	return nil
}

// showDictionary lists the levels that contain learned words
func (e *Engine) showDictionary(ctx context.Context, userID int64, sess *session) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("dictionary: %w: %v", ErrContentUnavailable, err)
	}

	if len(progress.Learned) == 0 {
		e.say(ctx, userID, "Вы пока не изучили ни одного слова. 😢", menuKeyboard)
		return nil
	}

	levels := make(map[int]bool)
	for id := range progress.Learned {
		if w, ok := e.catalog.WordByID(id); ok {
			levels[w.Level] = true
		}
	}
	if len(levels) == 0 {
		// learned words no longer resolve against the catalog snapshot
		e.say(ctx, userID, "Вы пока не изучили ни одного слова. 😢", menuKeyboard)
		return nil
	}

	sorted := make([]int, 0, len(levels))
	for level := range levels {
		sorted = append(sorted, level)
	}
	sort.Ints(sorted)

	var kb Keyboard
	for _, level := range sorted {
		kb = append(kb, []string{strconv.Itoa(level)})
	}
	kb = append(kb, []string{"Выйти"})

	sess.awaitDictLevel = true
	e.say(ctx, userID, "Выберите уровень слов:", kb)
	return nil
}

// showDictionaryLevel lists the learned words of one level and offers the
// translation game over them.
func (e *Engine) showDictionaryLevel(ctx context.Context, userID int64, sess *session, level int) error {
	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("dictionary level: %w: %v", ErrContentUnavailable, err)
	}

	var words []models.Word
	for _, w := range e.catalog.Words(level) {
		if progress.HasLearned(w.ID) {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		e.say(ctx, userID, fmt.Sprintf("На уровне %d пока нет изученных слов. 😢", level), menuKeyboard)
		return nil
	}

	ids := make([]int64, 0, len(words))
	var listing strings.Builder
	for _, w := range words {
		ids = append(ids, w.ID)
		listing.WriteString(fmt.Sprintf("%s — %s\n", w.Word, w.Translation))
	}
	sess.loadedWords = ids

	e.say(ctx, userID, fmt.Sprintf(
		"📚 Уровень %d\n\n📊 Изучено слов: %d\n\n🔠 Ваши слова:\n%s\nНажмите 'Играть' чтобы начать тренировку!",
		level, len(words), listing.String(),
	), Keyboard{{"Играть", cmdBack}})
	return nil
}

const hangulIntro = `🌟 Добро пожаловать в раздел "Хангыль"! 🎓
Здесь ты сможешь изучить корейский алфавит от первой буквы до последней! 🎉

В этом разделе ты можешь:

1️⃣ Изучать буквы — пройти полный путь от первой буквы до последней. Мы покажем, как пишется и произносится каждая буква, дадим примеры слов и объясним особенности.
2️⃣ Узнать, что за буква — введи любую букву, и мы расскажем о ней всё: как она звучит, как пишется и в каких словах используется.`
