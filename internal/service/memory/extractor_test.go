package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractor_TriggerRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		message string
		want    map[string]string
	}{
		{
			name:    "no_trigger_phrase",
			message: "what should I take for a headache?",
			want:    map[string]string{},
		},
		{
			name:    "name_first_token_only",
			message: "my name is Alice visiting",
			want:    map[string]string{"Name": "Alice"},
		},
		{
			name:    "numeric_age",
			message: "I am 29 years old",
			want:    map[string]string{"Age": "29"},
		},
		{
			name:    "non_numeric_age_rejected",
			message: "I am quite years old",
			want:    map[string]string{},
		},
		{
			name:    "job_strips_as_prefix",
			message: "I work as a nurse",
			want:    map[string]string{"Job": "A Nurse"},
		},
		{
			name:    "job_strips_at_prefix",
			message: "i work at mercy hospital",
			want:    map[string]string{"Job": "Mercy Hospital"},
		},
		{
			name:    "location_first_token",
			message: "I live in Oslo these days",
			want:    map[string]string{"Location": "Oslo"},
		},
		{
			name:    "hometown_first_token",
			message: "I am from Lisbon originally",
			want:    map[string]string{"Hometown": "Lisbon"},
		},
		{
			name:    "likes_whole_fragment",
			message: "I love morning walks",
			want:    map[string]string{"Likes": "Morning Walks"},
		},
		{
			name:    "later_rule_wins_same_key",
			message: "I love tea but honestly I like coffee",
			want:    map[string]string{"Likes": "Coffee"},
		},
		{
			name:    "multiple_independent_rules",
			message: "my name is Bob and I live in Madrid",
			want:    map[string]string{"Name": "Bob", "Location": "Madrid"},
		},
		{
			name:    "trailing_lead_phrase_skipped",
			message: "you already know my name is",
			want:    map[string]string{},
		},
		{
			name:    "remember_with_separator",
			message: "remember that blood type: o negative",
			want:    map[string]string{"Blood Type": "O Negative"},
		},
		{
			name:    "remember_with_is_separator",
			message: "don't forget my pharmacy is MedPlus",
			want:    map[string]string{"My Pharmacy": "Medplus"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewExtractor(nil).Extract(context.Background(), tt.message)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_DelegateFallback(t *testing.T) {
	t.Parallel()
	delegate := func(ctx context.Context, fragment string) (string, string, bool) {
		require.Equal(t, "I take my pills after breakfast", fragment)
		return "medication schedule", "after breakfast", true
	}

	got := NewExtractor(delegate).Extract(context.Background(), "remember that I take my pills after breakfast")

	// Only the key is normalized for delegate-produced pairs.
	require.Equal(t, map[string]string{"Medication Schedule": "after breakfast"}, got)
}

func TestExtractor_DelegateRejections(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		key, value string
		ok         bool
	}{
		{name: "declined", key: "", value: "", ok: false},
		{name: "empty_key", key: "", value: "something", ok: true},
		{name: "empty_value", key: "something", value: "", ok: true},
		{name: "none_sentinel", key: "none", value: "whatever", ok: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			delegate := func(ctx context.Context, fragment string) (string, string, bool) {
				return tt.key, tt.value, tt.ok
			}
			got := NewExtractor(delegate).Extract(context.Background(), "remember that something vague")
			require.Empty(t, got)
		})
	}
}

func TestExtractor_NoDelegateNoSeparator(t *testing.T) {
	t.Parallel()
	got := NewExtractor(nil).Extract(context.Background(), "remember that something vague")
	require.Empty(t, got)
}
