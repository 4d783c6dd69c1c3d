package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/log"
)

const delegatePrompt = `Extract one short profile fact about the user from the note below.
Reply with exactly one line in the form KEY: VALUE, with a concise key.
Reply with the single word none if the note contains no clear fact.

Note: %s`

// NewModelDelegate adapts the model provider into an extraction Delegate for
// remember-fragments that carry no explicit label/value separator.
func NewModelDelegate(provider core.ModelProvider) Delegate {
	return func(ctx context.Context, fragment string) (string, string, bool) {
		reply, err := provider.Generate(ctx, fmt.Sprintf(delegatePrompt, fragment))
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("delegate extraction failed")
			return "", "", false
		}

		line := firstLine(reply)
		if line == "" || strings.EqualFold(line, "none") {
			return "", "", false
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return "", "", false
		}
		return strings.TrimSpace(key), strings.TrimSpace(value), true
	}
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "`"))
		if line != "" {
			return line
		}
	}
	return ""
}
