package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/stretchr/testify/require"
)

func newTestComposer() *Composer {
	return NewComposer(NewPersonaRegistry())
}

func TestComposer_EmptyFactsAndHistory(t *testing.T) {
	t.Parallel()
	prompt := newTestComposer().Compose("hello", nil, nil, "caring")

	require.NotContains(t, prompt, factsHeader)
	require.NotContains(t, prompt, historyHeader)

	personaIdx := strings.Index(prompt, NewPersonaRegistry().Get("caring").Instructions)
	messageIdx := strings.Index(prompt, messageHeader+"\nYou: hello")
	require.Equal(t, 0, personaIdx)
	require.Greater(t, messageIdx, personaIdx)
}

func TestComposer_FactBlock(t *testing.T) {
	t.Parallel()
	facts := map[string]string{"Name": "Alice", "Age": "29"}
	prompt := newTestComposer().Compose("hi", nil, facts, "caring")

	require.Contains(t, prompt, factsHeader)
	require.Contains(t, prompt, "- Name: Alice")
	require.Contains(t, prompt, "- Age: 29")
	// Keys render sorted, so Age comes before Name.
	require.Less(t, strings.Index(prompt, "- Age:"), strings.Index(prompt, "- Name:"))
}

func TestComposer_StableRender(t *testing.T) {
	t.Parallel()
	facts := map[string]string{"Name": "Alice", "Age": "29", "Location": "Oslo", "Job": "Nurse"}
	c := newTestComposer()

	first := c.Compose("hi", nil, facts, "caring")
	for i := 0; i < 20; i++ {
		require.Equal(t, first, c.Compose("hi", nil, facts, "caring"))
	}
}

func TestComposer_HistoryWindowCap(t *testing.T) {
	t.Parallel()
	var history []core.Exchange
	for i := 0; i < 15; i++ {
		history = append(history, core.Exchange{
			UserMessage:       fmt.Sprintf("question-%d", i),
			AssistantResponse: fmt.Sprintf("answer-%d", i),
		})
	}

	prompt := newTestComposer().Compose("hi", history, nil, "caring")

	// Exactly the most recent 10, oldest first.
	for i := 0; i < 5; i++ {
		require.NotContains(t, prompt, fmt.Sprintf("question-%d\n", i))
	}
	for i := 5; i < 15; i++ {
		require.Contains(t, prompt, fmt.Sprintf("You: question-%d", i))
		require.Contains(t, prompt, fmt.Sprintf("Me: answer-%d", i))
	}
	require.Less(t, strings.Index(prompt, "question-5"), strings.Index(prompt, "question-14"))
}

func TestComposer_HistoryFormat(t *testing.T) {
	t.Parallel()
	history := []core.Exchange{{UserMessage: "am I ok?", AssistantResponse: "see a doctor"}}

	prompt := newTestComposer().Compose("thanks", history, nil, "caring")

	require.Contains(t, prompt, historyHeader+"\nYou: am I ok?\nMe: see a doctor")
}

func TestComposer_UnknownPersonaFallsBack(t *testing.T) {
	t.Parallel()
	reg := NewPersonaRegistry()
	prompt := NewComposer(reg).Compose("hi", nil, nil, "no-such-persona")

	require.True(t, strings.HasPrefix(prompt, reg.Get(DefaultPersonaID).Instructions))
}
