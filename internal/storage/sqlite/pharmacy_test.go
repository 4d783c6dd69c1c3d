package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReminders_AddAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reminders := NewReminders(newTestDB(t))

	rem, err := reminders.Add(ctx, "alice", "aspirin", "08:00")
	require.NoError(t, err)
	require.NotZero(t, rem.ID)
	require.Equal(t, "aspirin", rem.Medicine)
	require.False(t, rem.CreatedAt.IsZero())

	_, err = reminders.Add(ctx, "bob", "ibuprofen", "12:00")
	require.NoError(t, err)

	got, err := reminders.ByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "08:00", got[0].RemindAt)
}

func TestOrders_AddListLast(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	orders := NewOrders(newTestDB(t))

	_, ok, err := orders.Last(ctx, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = orders.Add(ctx, "alice", "aspirin", 1)
	require.NoError(t, err)
	second, err := orders.Add(ctx, "alice", "vitamin d", 2)
	require.NoError(t, err)

	got, err := orders.ByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "aspirin", got[0].Medicine)

	last, ok, err := orders.Last(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second.ID, last.ID)
	require.Equal(t, "vitamin d", last.Medicine)
}
