// Package engine implements the learning progression engine: the per-user
// state machine that decides which mode is active, what content to present
// next, how answers are graded and when a spelling check is interleaved
// into the vocabulary flow.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/example/korbot/pkg/models"
)

// Catalog is the read-only content source consumed by the engine
type Catalog interface {
	Letters() []models.Letter
	LetterByGlyph(glyph string) (models.Letter, bool)
	Words(level int) []models.Word
	WordByID(id int64) (models.Word, bool)
}

// ProgressStore is the durable per-user record consumed by the engine
type ProgressStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.UserProgress, error)
	ApplyDelta(ctx context.Context, userID int64, delta models.ProgressDelta) error
	ClearLearned(ctx context.Context, userID int64) error
}

// Keyboard is a reply keyboard layout, row by row
type Keyboard [][]string

// Presenter delivers prompts to the user. Delivery failures never roll back
// engine state: progress is mutated on validated input, not on send success.
type Presenter interface {
	Text(ctx context.Context, userID int64, text string, keyboard Keyboard) error
	Image(ctx context.Context, userID int64, url, caption string, keyboard Keyboard) error
}

// Config holds the engine tunables
type Config struct {
	// CheckInterval is the number of correct vocabulary answers between
	// spelling probes.
	CheckInterval int
	// RecentWindow bounds how many recently learned words a probe picks from.
	RecentWindow int
	// Rand drives option shuffling and probe selection. Defaults to a
	// time-seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns the reference engine configuration
func DefaultConfig() Config {
	return Config{
		CheckInterval: 3,
		RecentWindow:  3,
	}
}

// Engine is the learning progression engine. One instance serves all users;
// events of the same user are serialized through the session arena.
type Engine struct {
	catalog   Catalog
	store     ProgressStore
	presenter Presenter
	cfg       Config
	sessions  *sessionArena

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates an engine over the given collaborators
func New(catalog Catalog, store ProgressStore, presenter Presenter, cfg Config) *Engine {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 3
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = cfg.CheckInterval
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		catalog:   catalog,
		store:     store,
		presenter: presenter,
		cfg:       cfg,
		sessions:  newSessionArena(),
		rng:       rng,
	}
}

const (
	cmdExit     = "выйти"
	cmdPlay     = "играть"
	cmdStop     = "Стоп 🛑"
	cmdReplay   = "Играть еще раз 🔄"
	cmdBack     = "Назад 🔙"
	msgBadInput = "Пожалуйста, выбери номер варианта или нажми 'Выйти'."
	msgRetry    = "Сервис временно недоступен. Попробуйте позже."
	msgStale    = "Данные обновились, возвращаемся в меню."
)

// HandleEvent consumes one inbound text event for a user. It is the single
// entry point of the engine: overrides run first (exit, then the spelling
// check), then the event is dispatched by mode.
func (e *Engine) HandleEvent(ctx context.Context, userID int64, text string) error {
	sess := e.sessions.acquire(userID)
	defer sess.mu.Unlock()

	input := strings.TrimSpace(text)

	// "выйти" is absorbing from any mode
	if strings.ToLower(input) == cmdExit {
		sess.resetTransient()
		e.showMenu(ctx, userID)
		return nil
	}

	// an in-flight spelling check consumes the next event no matter its shape
	if sess.mode == ModeSpellingCheck {
		return e.handleSpellingAnswer(ctx, userID, sess, input)
	}

	switch sess.mode {
	case ModeMenu:
		return e.handleMenu(ctx, userID, sess, input)
	case ModeLearnLetters:
		return e.handleLetterAnswer(ctx, userID, sess, input)
	case ModeLetterLookup:
		return e.handleLetterLookup(ctx, userID, sess, input)
	case ModeLearnWords:
		return e.handleWordAnswer(ctx, userID, sess, input)
	case ModeGame:
		return e.handleGameAnswer(ctx, userID, sess, input)
	}

	// dispatch is total over Mode; an unknown value means corrupted state
	sess.resetTransient()
	e.showMenu(ctx, userID)
	return fmt.Errorf("user %d: %w: unknown mode", userID, ErrStaleState)
}

// ResetScore sets the user's score back to zero
func (e *Engine) ResetScore(ctx context.Context, userID int64) error {
	sess := e.sessions.acquire(userID)
	defer sess.mu.Unlock()

	progress, err := e.store.GetOrCreate(ctx, userID)
	if err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("reset score: %w: %v", ErrContentUnavailable, err)
	}
	if progress.Score != 0 {
		if err := e.store.ApplyDelta(ctx, userID, models.ProgressDelta{ScoreDelta: -progress.Score}); err != nil {
			e.say(ctx, userID, msgRetry, nil)
			return fmt.Errorf("reset score: %w: %v", ErrContentUnavailable, err)
		}
	}
	e.say(ctx, userID, "Ваш счёт успешно обнулён! 🎉", nil)
	return nil
}

// ClearDictionary empties the user's learned-word set
func (e *Engine) ClearDictionary(ctx context.Context, userID int64) error {
	sess := e.sessions.acquire(userID)
	defer sess.mu.Unlock()

	if err := e.store.ClearLearned(ctx, userID); err != nil {
		e.say(ctx, userID, msgRetry, nil)
		return fmt.Errorf("clear dictionary: %w: %v", ErrContentUnavailable, err)
	}
	sess.recentLearned = nil
	sess.loadedWords = nil
	e.say(ctx, userID, "Ваш словарь очищен. Начните изучение заново! 🌱", nil)
	return nil
}

// say presents a text prompt. Send failures are logged and swallowed so a
// delivery problem never desynchronizes progress from content.
func (e *Engine) say(ctx context.Context, userID int64, text string, keyboard Keyboard) {
	if err := e.presenter.Text(ctx, userID, text, keyboard); err != nil {
		log.Printf("Error sending message to user %d: %v", userID, err)
	}
}

// show presents an image prompt, falling back to text when there is no URL
func (e *Engine) show(ctx context.Context, userID int64, url, caption string, keyboard Keyboard) {
	if url == "" {
		e.say(ctx, userID, caption, keyboard)
		return
	}
	if err := e.presenter.Image(ctx, userID, url, caption, keyboard); err != nil {
		log.Printf("Error sending image to user %d: %v", userID, err)
	}
}

// staleReset recovers a session that references unresolvable content
func (e *Engine) staleReset(ctx context.Context, userID int64, sess *session, cause string) error {
	sess.resetTransient()
	e.say(ctx, userID, msgStale, nil)
	e.showMenu(ctx, userID)
	return fmt.Errorf("user %d: %w: %s", userID, ErrStaleState, cause)
}

// intn draws a bounded random number; the shared source is mutex-guarded
// because sessions of different users run in parallel.
func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

// shuffle permutes a string slice in place
func (e *Engine) shuffle(items []string) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// shuffleWords permutes a word slice in place
func (e *Engine) shuffleWords(items []models.Word) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
