package memory

import (
	"context"
	"fmt"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/log"
)

// Engine is the boundary of the memory core: it extracts and persists facts,
// assembles prompts, and exposes the fact administration operations.
type Engine struct {
	facts     core.FactRepository
	exchanges core.ExchangeRepository
	extractor *Extractor
	composer  *Composer
}

func NewEngine(
	facts core.FactRepository,
	exchanges core.ExchangeRepository,
	extractor *Extractor,
	composer *Composer,
) *Engine {
	return &Engine{
		facts:     facts,
		exchanges: exchanges,
		extractor: extractor,
		composer:  composer,
	}
}

// HandleMessage runs extraction, persists any new facts, reads back the fact
// snapshot and recent history, and returns the assembled prompt. The caller
// sends the prompt to the model service and then calls RecordExchange.
func (g *Engine) HandleMessage(ctx context.Context, sessionID, message, personaID string) (string, error) {
	if sessionID == "" {
		return "", core.NewValidationError("session_id")
	}
	if message == "" {
		return "", core.NewValidationError("message")
	}

	logger := log.FromCtx(ctx)

	extracted := g.extractor.Extract(ctx, message)
	for key, value := range extracted {
		if err := g.facts.Set(ctx, key, value); err != nil {
			return "", fmt.Errorf("failed to store extracted fact: %w", err)
		}
		logger.Info().Str("key", key).Msg("fact extracted")
	}

	snapshot, err := g.facts.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load fact snapshot: %w", err)
	}

	history, err := g.exchanges.Recent(ctx, sessionID, HistoryWindow)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	return g.composer.Compose(message, history, snapshot, personaID), nil
}

// RecordExchange persists one completed exchange. Every exchange must carry a
// non-empty message and response.
func (g *Engine) RecordExchange(ctx context.Context, sessionID, message, response string) error {
	if sessionID == "" {
		return core.NewValidationError("session_id")
	}
	if message == "" {
		return core.NewValidationError("message")
	}
	if response == "" {
		return core.NewValidationError("response")
	}
	return g.exchanges.Add(ctx, sessionID, message, response)
}

// ListHistory returns up to limit exchanges for a session, oldest first.
func (g *Engine) ListHistory(ctx context.Context, sessionID string, limit int) ([]core.Exchange, error) {
	if sessionID == "" {
		return nil, core.NewValidationError("session_id")
	}
	if limit <= 0 {
		limit = HistoryWindow
	}
	return g.exchanges.Recent(ctx, sessionID, limit)
}

func (g *Engine) ListFacts(ctx context.Context) (map[string]string, error) {
	return g.facts.All(ctx)
}

func (g *Engine) UpsertFact(ctx context.Context, key, value string) error {
	if key == "" {
		return core.NewValidationError("key")
	}
	if value == "" {
		return core.NewValidationError("value")
	}
	return g.facts.Set(ctx, key, value)
}

// DeleteFact removes a fact; deleting an absent key succeeds.
func (g *Engine) DeleteFact(ctx context.Context, key string) error {
	if key == "" {
		return core.NewValidationError("key")
	}
	return g.facts.Delete(ctx, key)
}

// RenameFact deletes the old key and writes the new one. The two steps are
// NOT atomic: a failure between them leaves neither fact behind. That
// best-effort window is accepted and documented rather than masked with a
// rollback.
func (g *Engine) RenameFact(ctx context.Context, oldKey, newKey, newValue string) error {
	if oldKey == "" {
		return core.NewValidationError("old_key")
	}
	if newKey == "" {
		return core.NewValidationError("new_key")
	}
	if newValue == "" {
		return core.NewValidationError("new_value")
	}

	if err := g.facts.Delete(ctx, oldKey); err != nil {
		return fmt.Errorf("failed to delete old key: %w", err)
	}
	return g.facts.Set(ctx, newKey, newValue)
}
