package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aiforhelp/carebot/internal/core"
)

type Reminders struct {
	db *sql.DB
}

func NewReminders(db *sql.DB) *Reminders {
	return &Reminders{db: db}
}

func (r *Reminders) Add(ctx context.Context, user, medicine, remindAt string) (core.Reminder, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (user, medicine, remind_at) VALUES (?, ?, ?)`,
		user, medicine, remindAt)
	if err != nil {
		return core.Reminder{}, storageErr(fmt.Errorf("failed to insert reminder: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Reminder{}, storageErr(err)
	}
	return r.byID(ctx, id)
}

func (r *Reminders) byID(ctx context.Context, id int64) (core.Reminder, error) {
	var rem core.Reminder
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user, medicine, remind_at, created_at FROM reminders WHERE id = ?`, id).
		Scan(&rem.ID, &rem.User, &rem.Medicine, &rem.RemindAt, &rem.CreatedAt)
	if err != nil {
		return core.Reminder{}, storageErr(fmt.Errorf("failed to read reminder %d: %w", id, err))
	}
	return rem, nil
}

func (r *Reminders) ByUser(ctx context.Context, user string) ([]core.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user, medicine, remind_at, created_at FROM reminders WHERE user = ? ORDER BY id`, user)
	if err != nil {
		return nil, storageErr(fmt.Errorf("failed to query reminders: %w", err))
	}
	defer rows.Close()

	var reminders []core.Reminder
	for rows.Next() {
		var rem core.Reminder
		if err := rows.Scan(&rem.ID, &rem.User, &rem.Medicine, &rem.RemindAt, &rem.CreatedAt); err != nil {
			return nil, storageErr(fmt.Errorf("failed to scan reminder: %w", err))
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return reminders, nil
}

type Orders struct {
	db *sql.DB
}

func NewOrders(db *sql.DB) *Orders {
	return &Orders{db: db}
}

func (o *Orders) Add(ctx context.Context, user, medicine string, quantity int) (core.Order, error) {
	res, err := o.db.ExecContext(ctx,
		`INSERT INTO orders (user, medicine, quantity) VALUES (?, ?, ?)`,
		user, medicine, quantity)
	if err != nil {
		return core.Order{}, storageErr(fmt.Errorf("failed to insert order: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Order{}, storageErr(err)
	}

	var ord core.Order
	err = o.db.QueryRowContext(ctx,
		`SELECT id, user, medicine, quantity, created_at FROM orders WHERE id = ?`, id).
		Scan(&ord.ID, &ord.User, &ord.Medicine, &ord.Quantity, &ord.CreatedAt)
	if err != nil {
		return core.Order{}, storageErr(fmt.Errorf("failed to read order %d: %w", id, err))
	}
	return ord, nil
}

func (o *Orders) ByUser(ctx context.Context, user string) ([]core.Order, error) {
	rows, err := o.db.QueryContext(ctx,
		`SELECT id, user, medicine, quantity, created_at FROM orders WHERE user = ? ORDER BY id`, user)
	if err != nil {
		return nil, storageErr(fmt.Errorf("failed to query orders: %w", err))
	}
	defer rows.Close()

	var orders []core.Order
	for rows.Next() {
		var ord core.Order
		if err := rows.Scan(&ord.ID, &ord.User, &ord.Medicine, &ord.Quantity, &ord.CreatedAt); err != nil {
			return nil, storageErr(fmt.Errorf("failed to scan order: %w", err))
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return orders, nil
}

// Last returns the user's most recent order, if any.
func (o *Orders) Last(ctx context.Context, user string) (core.Order, bool, error) {
	var ord core.Order
	err := o.db.QueryRowContext(ctx,
		`SELECT id, user, medicine, quantity, created_at FROM orders WHERE user = ? ORDER BY id DESC LIMIT 1`, user).
		Scan(&ord.ID, &ord.User, &ord.Medicine, &ord.Quantity, &ord.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Order{}, false, nil
	}
	if err != nil {
		return core.Order{}, false, storageErr(fmt.Errorf("failed to read last order: %w", err))
	}
	return ord, true, nil
}
