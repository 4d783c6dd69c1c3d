package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersonaRegistry_Get(t *testing.T) {
	t.Parallel()
	reg := NewPersonaRegistry()

	clinical := reg.Get("clinical")
	require.Equal(t, "clinical", clinical.ID)
	require.NotEmpty(t, clinical.Instructions)
}

func TestPersonaRegistry_UnknownFallsBack(t *testing.T) {
	t.Parallel()
	reg := NewPersonaRegistry()

	got := reg.Get("pirate")
	require.Equal(t, DefaultPersonaID, got.ID)
	require.Equal(t, reg.Get(DefaultPersonaID), got)
}

func TestPersonaRegistry_IDs(t *testing.T) {
	t.Parallel()
	ids := NewPersonaRegistry().IDs()

	require.Contains(t, ids, DefaultPersonaID)
	require.IsIncreasing(t, ids)
}
