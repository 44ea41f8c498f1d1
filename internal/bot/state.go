package bot

import (
	"sync"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// State is the per-chat conversational state.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingEmail  State = "awaiting_email"
	StateMainMenu       State = "main_menu"
	StateInterview      State = "interview"
	StateAdvisorChat    State = "advisor_chat"
	StateAdminSearch    State = "admin_search"
	StateAdminHistory   State = "admin_history"
	StateAdminBroadcast State = "admin_broadcast"
)

// chatSession is the in-memory conversational context for one chat.
// Durable facts live in the database; this only routes messages.
type chatSession struct {
	State  State
	Script model.Script

	// Interview context.
	SessionID uint

	// Advisor chat context, populated after completion.
	Profile          *model.Profile
	Recommendation   string
	RecommendationID uint

	// Pending rating target, set while waiting for feedback text.
	processing bool
}

// stateManager tracks chat sessions. Telegram delivers one update at
// a time per chat, so a plain mutex around the map is enough.
type stateManager struct {
	mu       sync.RWMutex
	sessions map[int64]*chatSession
}

func newStateManager() *stateManager {
	return &stateManager{sessions: make(map[int64]*chatSession)}
}

// get returns the session for chatID, creating an idle one if needed.
func (m *stateManager) get(chatID int64) *chatSession {
	m.mu.RLock()
	s, ok := m.sessions[chatID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[chatID]; ok {
		return s
	}
	s = &chatSession{State: StateIdle, Script: model.ScriptLatin}
	m.sessions[chatID] = s
	return s
}

func (m *stateManager) reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// tryAcquire marks the chat busy for the duration of a slow handler,
// so a user hammering the bot does not interleave LLM calls on the
// same session.
func (m *stateManager) tryAcquire(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = &chatSession{State: StateIdle, Script: model.ScriptLatin}
		m.sessions[chatID] = s
	}
	if s.processing {
		return false
	}
	s.processing = true
	return true
}

func (m *stateManager) release(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		s.processing = false
	}
}
