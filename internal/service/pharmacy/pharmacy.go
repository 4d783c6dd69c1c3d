// Package pharmacy covers medicine reminders and order placement.
package pharmacy

import (
	"context"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/log"
)

type Service struct {
	reminders core.ReminderRepository
	orders    core.OrderRepository
}

func NewService(reminders core.ReminderRepository, orders core.OrderRepository) *Service {
	return &Service{reminders: reminders, orders: orders}
}

func (s *Service) SetReminder(ctx context.Context, user, medicine, remindAt string) (core.Reminder, error) {
	if user == "" {
		return core.Reminder{}, core.NewValidationError("user")
	}
	if medicine == "" {
		return core.Reminder{}, core.NewValidationError("medicine")
	}
	if remindAt == "" {
		return core.Reminder{}, core.NewValidationError("time")
	}

	rem, err := s.reminders.Add(ctx, user, medicine, remindAt)
	if err != nil {
		return core.Reminder{}, err
	}

	log.FromCtx(ctx).Debug().
		Str("user", user).
		Str("medicine", medicine).
		Msg("reminder set")
	return rem, nil
}

func (s *Service) Reminders(ctx context.Context, user string) ([]core.Reminder, error) {
	if user == "" {
		return nil, core.NewValidationError("user")
	}
	return s.reminders.ByUser(ctx, user)
}

func (s *Service) PlaceOrder(ctx context.Context, user, medicine string, quantity int) (core.Order, error) {
	if user == "" {
		return core.Order{}, core.NewValidationError("user")
	}
	if medicine == "" {
		return core.Order{}, core.NewValidationError("medicine")
	}
	if quantity < 1 {
		return core.Order{}, core.NewValidationError("quantity")
	}

	ord, err := s.orders.Add(ctx, user, medicine, quantity)
	if err != nil {
		return core.Order{}, err
	}

	log.FromCtx(ctx).Debug().
		Str("user", user).
		Str("medicine", medicine).
		Int("quantity", quantity).
		Msg("order placed")
	return ord, nil
}

func (s *Service) Orders(ctx context.Context, user string) ([]core.Order, error) {
	if user == "" {
		return nil, core.NewValidationError("user")
	}
	return s.orders.ByUser(ctx, user)
}

// RepeatLastOrder places a new order copying the user's most recent one.
// The second return is false when the user has no order history.
func (s *Service) RepeatLastOrder(ctx context.Context, user string) (core.Order, bool, error) {
	if user == "" {
		return core.Order{}, false, core.NewValidationError("user")
	}

	last, ok, err := s.orders.Last(ctx, user)
	if err != nil || !ok {
		return core.Order{}, false, err
	}

	ord, err := s.orders.Add(ctx, user, last.Medicine, last.Quantity)
	if err != nil {
		return core.Order{}, false, err
	}
	return ord, true, nil
}
