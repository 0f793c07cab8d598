package engine

import (
	"sync"

	"github.com/example/korbot/pkg/models"
)

// Mode identifies the active conversation mode of a session
type Mode int

const (
	ModeMenu Mode = iota
	ModeLearnLetters
	ModeLetterLookup
	ModeLearnWords
	ModeGame
	ModeSpellingCheck
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeLearnLetters:
		return "learn_letters"
	case ModeLetterLookup:
		return "letter_lookup"
	case ModeLearnWords:
		return "learn_words"
	case ModeGame:
		return "game"
	case ModeSpellingCheck:
		return "spelling_check"
	}
	return "unknown"
}

// letterPhase is the two-phase confirmation state of the letter sequencer
type letterPhase int

const (
	phaseNone letterPhase = iota
	phaseAwaitLetter
	phaseAwaitWord
)

// pendingAnswer holds the active multiple-choice question
type pendingAnswer struct {
	WordID  int64
	Correct string
	Options []string
}

// spellingProbe holds the in-flight spelling check
type spellingProbe struct {
	WordID      int64
	Word        string
	Translation string
	Image       string
}

// gameState holds the translation game round
type gameState struct {
	Queue  []models.Word
	Cursor int
	Streak int
}

// session is the transient per-user state. It may be evicted and recreated
// at any time with only soft data loss; everything durable lives in the
// progress store. At most one of pending/probe is set at a time, and only
// in the mode that owns it.
type session struct {
	mu sync.Mutex

	mode  Mode
	phase letterPhase

	level  int
	queue  []int64 // word ids being walked
	cursor int

	pending *pendingAnswer
	probe   *spellingProbe

	wordsSinceCheck int
	recentLearned   []int64 // window for spelling probe selection

	awaitLevelPick bool // menu: waiting for a 1-6 level to start learning
	awaitDictLevel bool // menu: waiting for a level of the dictionary view
	loadedWords    []int64

	game *gameState
}

// resetTransient drops every mode-specific field and returns to the menu
func (s *session) resetTransient() {
	s.mode = ModeMenu
	s.phase = phaseNone
	s.level = 0
	s.queue = nil
	s.cursor = 0
	s.pending = nil
	s.probe = nil
	s.wordsSinceCheck = 0
	s.recentLearned = nil
	s.awaitLevelPick = false
	s.awaitDictLevel = false
	s.loadedWords = nil
	s.game = nil
}

// clearMenuFlags drops the menu sub-prompts before entering another mode
func (s *session) clearMenuFlags() {
	s.awaitLevelPick = false
	s.awaitDictLevel = false
}

// sessionArena is the per-user session store. Acquiring a session locks it
// for the duration of one event, serializing events of the same user while
// different users proceed in parallel.
type sessionArena struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionArena() *sessionArena {
	return &sessionArena{sessions: make(map[int64]*session)}
}

// acquire returns the user's session with its lock held. The caller must
// release it with sess.mu.Unlock once the event is fully handled.
func (a *sessionArena) acquire(userID int64) *session {
	a.mu.Lock()
	sess, ok := a.sessions[userID]
	if !ok {
		sess = &session{mode: ModeMenu}
		a.sessions[userID] = sess
	}
	a.mu.Unlock()

	sess.mu.Lock()
	return sess
}
