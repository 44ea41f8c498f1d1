package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

func TestStateManager_GetCreatesIdleSession(t *testing.T) {
	m := newStateManager()

	s := m.get(42)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, model.ScriptLatin, s.Script)

	s.State = StateInterview
	assert.Equal(t, StateInterview, m.get(42).State)
	assert.Equal(t, StateIdle, m.get(43).State)
}

func TestStateManager_Reset(t *testing.T) {
	m := newStateManager()
	m.get(42).State = StateAdvisorChat

	m.reset(42)
	assert.Equal(t, StateIdle, m.get(42).State)
}

func TestStateManager_TryAcquire(t *testing.T) {
	m := newStateManager()

	assert.True(t, m.tryAcquire(42))
	assert.False(t, m.tryAcquire(42))
	assert.True(t, m.tryAcquire(43))

	m.release(42)
	assert.True(t, m.tryAcquire(42))
}
