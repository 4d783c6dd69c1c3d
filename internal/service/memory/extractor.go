package memory

import (
	"context"
	"strings"

	"github.com/aiforhelp/carebot/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Delegate infers a (key, value) pair from a free-form fragment when no
// explicit separator is present. Implementations typically call the model
// provider; tests substitute a deterministic stub. ok=false means the
// fragment yields no fact.
type Delegate func(ctx context.Context, fragment string) (key, value string, ok bool)

// Extractor scans user messages for durable profile facts using an ordered
// list of trigger rules. It is a pure function of its inputs except for the
// optional delegate call.
type Extractor struct {
	delegate Delegate
	title    cases.Caser
}

func NewExtractor(delegate Delegate) *Extractor {
	return &Extractor{
		delegate: delegate,
		title:    cases.Title(language.English),
	}
}

type rule struct {
	phrase  string
	key     string
	capture func(e *Extractor, rest string) (string, bool)
}

// Specific rules run before the generic remember family. Within the list a
// later rule writing an already-present key overwrites it: last writer wins.
var rules = []rule{
	{phrase: "my name is", key: "Name", capture: (*Extractor).firstToken},
	{phrase: "i am ", key: "Age", capture: (*Extractor).numericAge},
	{phrase: "i work", key: "Job", capture: (*Extractor).jobTitle},
	{phrase: "i live in", key: "Location", capture: (*Extractor).firstToken},
	{phrase: "i am from", key: "Hometown", capture: (*Extractor).firstToken},
	{phrase: "i love", key: "Likes", capture: (*Extractor).wholeFragment},
	{phrase: "i like", key: "Likes", capture: (*Extractor).wholeFragment},
}

var rememberPhrases = []string{"remember that", "remember to", "don't forget", "dont forget", "save this"}

// Extract returns every fact the message triggers. A message with no trigger
// phrase yields an empty map, never an error.
func (e *Extractor) Extract(ctx context.Context, message string) map[string]string {
	facts := make(map[string]string)
	lowered := strings.ToLower(message)

	for _, r := range rules {
		rest, ok := remainderAfter(lowered, r.phrase)
		if !ok || rest == "" {
			// A lead phrase with nothing after it silently skips the rule.
			continue
		}
		if value, ok := r.capture(e, rest); ok {
			facts[r.key] = value
		}
	}

	for _, phrase := range rememberPhrases {
		idx := strings.Index(lowered, phrase)
		if idx == -1 {
			continue
		}
		// Slice the fragment from the original message so delegate values
		// keep the user's casing. Fall back to the lowered copy when
		// lowering changed byte lengths.
		var fragment string
		if len(message) == len(lowered) {
			fragment = message[idx+len(phrase):]
		} else {
			fragment = lowered[idx+len(phrase):]
		}
		fragment = strings.TrimSpace(strings.Trim(strings.TrimSpace(fragment), ":"))
		if fragment == "" {
			continue
		}
		e.extractRemembered(ctx, fragment, facts)
		break
	}

	return facts
}

func (e *Extractor) extractRemembered(ctx context.Context, fragment string, facts map[string]string) {
	if label, value, ok := splitLabelValue(fragment); ok {
		facts[e.title.String(label)] = e.title.String(value)
		return
	}

	if e.delegate == nil {
		return
	}

	key, value, ok := e.delegate(ctx, fragment)
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" ||
		strings.EqualFold(key, "none") || strings.EqualFold(value, "none") {
		log.FromCtx(ctx).Debug().Str("fragment", fragment).Msg("delegate yielded no usable fact")
		return
	}
	// Delegate pairs keep the value as produced; only the key is normalized.
	facts[e.title.String(key)] = value
}

// splitLabelValue splits a remember-fragment on the first explicit separator
// between a label and a value.
func splitLabelValue(fragment string) (string, string, bool) {
	sepIdx, sepLen := -1, 0
	for _, sep := range []string{":", "=", " is "} {
		if idx := strings.Index(fragment, sep); idx != -1 && (sepIdx == -1 || idx < sepIdx) {
			sepIdx, sepLen = idx, len(sep)
		}
	}
	if sepIdx == -1 {
		return "", "", false
	}

	label := strings.TrimSpace(fragment[:sepIdx])
	value := strings.TrimSpace(fragment[sepIdx+sepLen:])
	if label == "" || value == "" {
		return "", "", false
	}
	return label, value, true
}

// remainderAfter returns the trimmed text following the first occurrence of
// phrase, or ok=false when the phrase is absent.
func remainderAfter(s, phrase string) (string, bool) {
	idx := strings.Index(s, phrase)
	if idx == -1 {
		return "", false
	}
	return strings.TrimSpace(s[idx+len(phrase):]), true
}

func (e *Extractor) firstToken(rest string) (string, bool) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	token := strings.Trim(fields[0], ".,!?;:")
	if token == "" {
		return "", false
	}
	return e.title.String(token), true
}

func (e *Extractor) wholeFragment(rest string) (string, bool) {
	rest = strings.TrimSpace(strings.Trim(rest, ".!?"))
	if rest == "" {
		return "", false
	}
	return e.title.String(rest), true
}

func (e *Extractor) jobTitle(rest string) (string, bool) {
	rest = strings.TrimPrefix(rest, "as ")
	rest = strings.TrimPrefix(rest, "at ")
	return e.wholeFragment(rest)
}

// numericAge accepts "i am <n> years old" only when <n> is fully numeric.
func (e *Extractor) numericAge(rest string) (string, bool) {
	idx := strings.Index(rest, "years old")
	if idx == -1 {
		return "", false
	}
	fragment := strings.TrimSpace(rest[:idx])
	if fragment == "" {
		return "", false
	}
	for _, r := range fragment {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return fragment, true
}
