package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/log"
)

type Exchanges struct {
	db *sql.DB
}

func NewExchanges(db *sql.DB) *Exchanges {
	return &Exchanges{db: db}
}

// Add appends one exchange. Fire-and-forget durability: the generated id is
// not returned because no caller needs it.
func (e *Exchanges) Add(ctx context.Context, sessionID, userMessage, assistantResponse string) error {
	query := `INSERT INTO exchanges (session_id, user_message, assistant_response) VALUES (?, ?, ?)`
	_, err := e.db.ExecContext(ctx, query, sessionID, userMessage, assistantResponse)
	if err != nil {
		return storageErr(fmt.Errorf("failed to insert exchange: %w", err))
	}
	return nil
}

// Recent returns up to limit exchanges for a session in chronological order.
func (e *Exchanges) Recent(ctx context.Context, sessionID string, limit int) ([]core.Exchange, error) {
	// Fetch the LAST 'limit' exchanges by ordering DESC
	query := `SELECT id, session_id, user_message, assistant_response, created_at
		FROM exchanges WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := e.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, storageErr(fmt.Errorf("failed to query exchanges: %w", err))
	}
	defer rows.Close()

	var exchanges []core.Exchange
	for rows.Next() {
		var ex core.Exchange
		if err := rows.Scan(&ex.ID, &ex.SessionID, &ex.UserMessage, &ex.AssistantResponse, &ex.CreatedAt); err != nil {
			return nil, storageErr(fmt.Errorf("failed to scan exchange: %w", err))
		}
		exchanges = append(exchanges, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	// The query returned exchanges in Reverse Chronological Order (Newest -> Oldest).
	// Callers must never see that order, so reverse back to Oldest -> Newest.
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(exchanges)).Str("session", sessionID).Msg("loaded exchanges")
	return exchanges, nil
}
