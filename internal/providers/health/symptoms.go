package health

// SymptomCheck is a placeholder result; a real checker would consult a
// symptom dataset or external API.
type SymptomCheck struct {
	InputSymptoms      []string `json:"input_symptoms"`
	PossibleConditions []string `json:"possible_conditions"`
	Advice             string   `json:"advice"`
}

type SymptomChecker struct{}

func NewSymptomChecker() *SymptomChecker {
	return &SymptomChecker{}
}

func (c *SymptomChecker) Check(symptoms []string) SymptomCheck {
	return SymptomCheck{
		InputSymptoms:      symptoms,
		PossibleConditions: []string{"Condition A", "Condition B"},
		Advice:             "Consult a healthcare professional for a real diagnosis.",
	}
}
