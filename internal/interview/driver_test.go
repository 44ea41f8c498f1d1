package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/llm"
	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
)

type fakeLLM struct {
	reply  string
	err    error
	gotReq *llm.CompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.reply, Model: req.Model}, nil
}

func (f *fakeLLM) Name() string { return "fake" }

type appendedTurn struct {
	role    model.Role
	content string
}

type fakeSessions struct {
	turns      []appendedTurn
	increments int
	appendErr  error
}

func (f *fakeSessions) AppendTurn(_ context.Context, _ uint, role model.Role, content string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.turns = append(f.turns, appendedTurn{role, content})
	return nil
}

func (f *fakeSessions) IncrementQuestions(_ context.Context, _ uint) error {
	f.increments++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Model: "test-model", MaxTokens: 1500, Temperature: 0.7, RecMaxTokens: 4000}
}

func testSession() *model.InterviewSession {
	return &model.InterviewSession{
		ID:              1,
		TelegramID:      42,
		Status:          model.StatusActive,
		PreferredScript: model.ScriptLatin,
	}
}

func TestDriverAdvance_OngoingInterview(t *testing.T) {
	client := &fakeLLM{reply: "Juda yaxshi! Endi muddat haqida: necha yil investitsiya qilmoqchisiz?"}
	sessions := &fakeSessions{}
	d := NewDriver(client, sessions, testConfig(), logger.NewNop())

	result, err := d.Advance(context.Background(), testSession(), "Uy olmoqchiman")

	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Nil(t, result.Profile)
	assert.Contains(t, result.Reply, "muddat")

	require.Len(t, sessions.turns, 2)
	assert.Equal(t, model.RoleUser, sessions.turns[0].role)
	assert.Equal(t, "Uy olmoqchiman", sessions.turns[0].content)
	assert.Equal(t, model.RoleAssistant, sessions.turns[1].role)
	assert.Equal(t, 1, sessions.increments)
}

func TestDriverAdvance_Completion(t *testing.T) {
	client := &fakeLLM{reply: `Profilingiz tayyor!
INTERVIEW_COMPLETE
{"goal": "uy", "horizon": "10 yil", "budget": "1000", "risk_tolerance": "yuqori", "liquidity": "yo'q", "currency": "USD", "experience": "yangi", "restrictions": "yo'q"}`}
	sessions := &fakeSessions{}
	d := NewDriver(client, sessions, testConfig(), logger.NewNop())

	result, err := d.Advance(context.Background(), testSession(), "Cheklov yo'q")

	require.NoError(t, err)
	assert.True(t, result.Completed)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "uy", result.Profile.Goal)
	assert.Equal(t, "Profilingiz tayyor!", result.Reply)

	// Completion is not another question.
	assert.Equal(t, 0, sessions.increments)

	// The persisted assistant turn carries no wire markers.
	require.Len(t, sessions.turns, 2)
	assert.NotContains(t, sessions.turns[1].content, CompletionToken)
	assert.NotContains(t, sessions.turns[1].content, "{")
}

func TestDriverAdvance_ModelFailureKeepsUserTurn(t *testing.T) {
	client := &fakeLLM{err: errors.New("upstream timeout")}
	sessions := &fakeSessions{}
	d := NewDriver(client, sessions, testConfig(), logger.NewNop())

	_, err := d.Advance(context.Background(), testSession(), "Uy olmoqchiman")

	require.Error(t, err)
	// The user's message survives so a retry continues cleanly.
	require.Len(t, sessions.turns, 1)
	assert.Equal(t, model.RoleUser, sessions.turns[0].role)
	assert.Equal(t, 0, sessions.increments)
}

func TestDriverAdvance_SendsSystemPromptAndHistory(t *testing.T) {
	client := &fakeLLM{reply: "Keyingi savol..."}
	sessions := &fakeSessions{}
	d := NewDriver(client, sessions, testConfig(), logger.NewNop())

	sess := testSession()
	sess.ConversationHistory = []byte(`[{"role":"assistant","content":"Assalomu alaykum!"},{"role":"user","content":"Salom"}]`)

	_, err := d.Advance(context.Background(), sess, "Uy uchun")
	require.NoError(t, err)

	req := client.gotReq
	require.NotNil(t, req)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "INTERVIEW_COMPLETE")
	assert.Equal(t, "assistant", req.Messages[1].Role)
	assert.Equal(t, "user", req.Messages[2].Role)
	assert.Equal(t, "Uy uchun", req.Messages[3].Content)
	assert.Equal(t, "test-model", req.Model)
}

func TestDriverAdvance_CyrillicPrompt(t *testing.T) {
	client := &fakeLLM{reply: "Яхши!"}
	sessions := &fakeSessions{}
	d := NewDriver(client, sessions, testConfig(), logger.NewNop())

	sess := testSession()
	sess.PreferredScript = model.ScriptCyrillic

	_, err := d.Advance(context.Background(), sess, "Уй олмоқчиман")
	require.NoError(t, err)
	assert.Contains(t, client.gotReq.Messages[0].Content, "kirill")
}
