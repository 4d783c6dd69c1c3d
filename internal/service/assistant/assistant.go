package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/internal/service/memory"
	"github.com/aiforhelp/carebot/pkg/log"
	"github.com/pkoukk/tiktoken-go"
)

const promptEncoding = "cl100k_base"

// Assistant drives one full turn: assemble the prompt through the memory
// engine, call the model, record the exchange.
type Assistant struct {
	engine   *memory.Engine
	model    core.ModelProvider
	provider string

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

func New(engine *memory.Engine, model core.ModelProvider, provider string) *Assistant {
	return &Assistant{
		engine:   engine,
		model:    model,
		provider: provider,
	}
}

// Respond returns the model's reply for one user message. Model failures are
// surfaced as *core.ServiceError without retry and nothing is recorded for
// the failed turn.
func (a *Assistant) Respond(ctx context.Context, sessionID, message, personaID string) (string, error) {
	logger := log.FromCtx(ctx)

	prompt, err := a.engine.HandleMessage(ctx, sessionID, message, personaID)
	if err != nil {
		return "", err
	}

	a.logPromptSize(ctx, prompt)

	reply, err := a.model.Generate(ctx, prompt)
	if err != nil {
		return "", &core.ServiceError{Provider: a.provider, Err: err}
	}
	if strings.TrimSpace(reply) == "" {
		return "", &core.ServiceError{Provider: a.provider, Err: errors.New("empty model response")}
	}

	if err := a.engine.RecordExchange(ctx, sessionID, message, reply); err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("failed to record exchange")
	}

	return reply, nil
}

// logPromptSize reports the outbound prompt size. Token counting is
// best-effort telemetry; when the encoding cannot be loaded we fall back to
// bytes only.
func (a *Assistant) logPromptSize(ctx context.Context, prompt string) {
	logger := log.FromCtx(ctx)

	a.encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(promptEncoding)
		if err != nil {
			logger.Debug().Err(err).Msg("token encoding unavailable")
			return
		}
		a.enc = enc
	})

	event := logger.Debug().Int("bytes", len(prompt))
	if a.enc != nil {
		event = event.Int("tokens", len(a.enc.Encode(prompt, nil, nil)))
	}
	event.Msg("composed prompt")
}
