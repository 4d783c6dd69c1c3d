package memory

import (
	"sort"

	"github.com/aiforhelp/carebot/internal/core"
)

// DefaultPersonaID is the fallback for unknown persona ids; Get never fails.
const DefaultPersonaID = "caring"

// PersonaRegistry holds the fixed persona set. It is constructed once at
// startup and read-only afterwards; no mutation path is exposed.
type PersonaRegistry struct {
	personas map[string]core.Persona
}

func NewPersonaRegistry() *PersonaRegistry {
	personas := map[string]core.Persona{
		"caring": {
			ID: "caring",
			Instructions: "You are CareBot, a warm and supportive health assistant. " +
				"Answer in plain language, acknowledge the user's concerns, and " +
				"remind them to consult a healthcare professional for medical decisions.",
		},
		"clinical": {
			ID: "clinical",
			Instructions: "You are CareBot, a precise clinical assistant. " +
				"Answer factually and concisely, use correct medical terminology, " +
				"and state clearly when a question needs a licensed physician.",
		},
		"cheerful": {
			ID: "cheerful",
			Instructions: "You are CareBot, an upbeat health companion. " +
				"Keep answers light and encouraging while staying accurate, and " +
				"never make a diagnosis yourself.",
		},
		"concise": {
			ID: "concise",
			Instructions: "You are CareBot. Answer in at most three sentences. " +
				"Defer anything requiring medical judgement to a professional.",
		},
	}
	return &PersonaRegistry{personas: personas}
}

// Get resolves a persona id, falling back to the default for unknown ids.
func (r *PersonaRegistry) Get(id string) core.Persona {
	if p, ok := r.personas[id]; ok {
		return p
	}
	return r.personas[DefaultPersonaID]
}

func (r *PersonaRegistry) IDs() []string {
	ids := make([]string, 0, len(r.personas))
	for id := range r.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
