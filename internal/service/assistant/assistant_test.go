package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/internal/service/memory"
	"github.com/stretchr/testify/require"
)

type memFacts struct {
	data map[string]string
}

func (f *memFacts) Set(ctx context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *memFacts) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *memFacts) All(ctx context.Context) (map[string]string, error) {
	return f.data, nil
}

func (f *memFacts) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type memExchanges struct {
	data []core.Exchange
}

func (e *memExchanges) Add(ctx context.Context, sessionID, userMessage, assistantResponse string) error {
	e.data = append(e.data, core.Exchange{
		SessionID:         sessionID,
		UserMessage:       userMessage,
		AssistantResponse: assistantResponse,
		CreatedAt:         time.Now(),
	})
	return nil
}

func (e *memExchanges) Recent(ctx context.Context, sessionID string, limit int) ([]core.Exchange, error) {
	return e.data, nil
}

type stubModel struct {
	reply string
	err   error

	gotPrompt string
}

func (m *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.gotPrompt = prompt
	return m.reply, m.err
}

func newTestAssistant(model *stubModel) (*Assistant, *memExchanges) {
	exchanges := &memExchanges{}
	engine := memory.NewEngine(
		&memFacts{data: make(map[string]string)},
		exchanges,
		memory.NewExtractor(nil),
		memory.NewComposer(memory.NewPersonaRegistry()),
	)
	return New(engine, model, "stub"), exchanges
}

func TestAssistant_Respond(t *testing.T) {
	t.Parallel()
	model := &stubModel{reply: "nice to meet you, Alice"}
	a, exchanges := newTestAssistant(model)

	reply, err := a.Respond(context.Background(), "s1", "my name is Alice", "caring")
	require.NoError(t, err)
	require.Equal(t, "nice to meet you, Alice", reply)

	// The prompt carried the freshly extracted fact.
	require.Contains(t, model.gotPrompt, "- Name: Alice")

	// The completed turn was recorded.
	require.Len(t, exchanges.data, 1)
	require.Equal(t, "my name is Alice", exchanges.data[0].UserMessage)
	require.Equal(t, "nice to meet you, Alice", exchanges.data[0].AssistantResponse)
}

func TestAssistant_ModelFailure(t *testing.T) {
	t.Parallel()
	model := &stubModel{err: errors.New("rate limited")}
	a, exchanges := newTestAssistant(model)

	_, err := a.Respond(context.Background(), "s1", "hello there", "caring")

	var serr *core.ServiceError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "stub", serr.Provider)
	require.ErrorContains(t, serr, "rate limited")

	// Nothing is recorded for a failed turn.
	require.Empty(t, exchanges.data)
}

func TestAssistant_EmptyModelResponse(t *testing.T) {
	t.Parallel()
	model := &stubModel{reply: "  \n"}
	a, exchanges := newTestAssistant(model)

	_, err := a.Respond(context.Background(), "s1", "hello there", "caring")

	var serr *core.ServiceError
	require.ErrorAs(t, err, &serr)
	require.Empty(t, exchanges.data)
}

func TestAssistant_ValidationPassthrough(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssistant(&stubModel{reply: "hi"})

	var verr *core.ValidationError
	_, err := a.Respond(context.Background(), "", "hello", "caring")
	require.ErrorAs(t, err, &verr)
}
