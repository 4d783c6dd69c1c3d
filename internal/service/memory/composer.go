package memory

import (
	"sort"
	"strings"

	"github.com/aiforhelp/carebot/internal/core"
)

// HistoryWindow caps the number of exchanges included in a composed prompt.
// The bound keeps the outbound payload size predictable; it is deliberately
// not configurable per call.
const HistoryWindow = 10

const (
	factsHeader   = "What I know about the user:"
	historyHeader = "Recent conversation:"
	messageHeader = "Reply to the user's message:"
)

// Composer renders the outbound prompt. It performs no storage or network
// I/O; everything it needs arrives as arguments.
type Composer struct {
	personas *PersonaRegistry
}

func NewComposer(personas *PersonaRegistry) *Composer {
	return &Composer{personas: personas}
}

// Compose builds the prompt as blank-line separated blocks: persona
// instructions, fact snapshot, the most recent exchanges oldest-first, and
// the current message. Empty fact or history blocks are omitted entirely.
func (c *Composer) Compose(message string, history []core.Exchange, facts map[string]string, personaID string) string {
	blocks := make([]string, 0, 4)
	blocks = append(blocks, c.personas.Get(personaID).Instructions)

	if len(facts) > 0 {
		keys := make([]string, 0, len(facts))
		for k := range facts {
			keys = append(keys, k)
		}
		// Sorted so the same snapshot always renders identically.
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString(factsHeader)
		for _, k := range keys {
			b.WriteString("\n- ")
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(facts[k])
		}
		blocks = append(blocks, b.String())
	}

	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	if len(history) > 0 {
		var b strings.Builder
		b.WriteString(historyHeader)
		for _, ex := range history {
			b.WriteString("\nYou: ")
			b.WriteString(ex.UserMessage)
			b.WriteString("\nMe: ")
			b.WriteString(ex.AssistantResponse)
		}
		blocks = append(blocks, b.String())
	}

	blocks = append(blocks, messageHeader+"\nYou: "+message)

	return strings.Join(blocks, "\n\n")
}
