package core

import "time"

const (
	CareBotName       = "CareBot"
	CareBotUserAgent  = "CareBot-Assistant/0.1"
	CareBotRepository = "https://github.com/aiforhelp/carebot"
	CareBotVersion    = "0.1.0"
)

// Exchange is one persisted (user message, assistant response) pair.
// Exchanges are append-only and partitioned by session id.
type Exchange struct {
	ID                int64     `json:"id"`
	SessionID         string    `json:"session_id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	CreatedAt         time.Time `json:"created_at"`
}

// Fact is one durable user attribute. At most one live value per key;
// writing an existing key overwrites value and timestamp.
type Fact struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Persona is a named instruction template shaping the assistant's tone.
// Personas are immutable after process start.
type Persona struct {
	ID           string `json:"id"`
	Instructions string `json:"instructions"`
}

// Reminder is a scheduled medicine reminder for a named user.
type Reminder struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Medicine  string    `json:"medicine"`
	RemindAt  string    `json:"remind_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a placed medicine order.
type Order struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Medicine  string    `json:"medicine"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
