package core

import "context"

type ExchangeRepository interface {
	Add(ctx context.Context, sessionID, userMessage, assistantResponse string) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Exchange, error)
}

type FactRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	All(ctx context.Context) (map[string]string, error)
	Delete(ctx context.Context, key string) error
}

type ReminderRepository interface {
	Add(ctx context.Context, user, medicine, remindAt string) (Reminder, error)
	ByUser(ctx context.Context, user string) ([]Reminder, error)
}

type OrderRepository interface {
	Add(ctx context.Context, user, medicine string, quantity int) (Order, error)
	ByUser(ctx context.Context, user string) ([]Order, error)
	Last(ctx context.Context, user string) (Order, bool, error)
}
