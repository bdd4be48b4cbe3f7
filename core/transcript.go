// Package core defines the data model shared by the chat client, the offer
// table, the renderers and the demo agent: transcripts, offers, sort state and
// the query wire format.
package core

import "time"

// Transcript is the ordered list of displayed conversation turns.
type Transcript struct {
	SessionToken string    `json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`
	Messages     []Message `json:"messages"`
}

// Message is a single bubble in the transcript.
type Message struct {
	Role      Role       `json:"role"`
	Kind      Kind       `json:"kind,omitempty"`
	Format    TextFormat `json:"format,omitempty"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Role enumerates who produced a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Kind distinguishes agent replies from locally generated notices and
// failure messages. User messages are always KindReply.
type Kind string

const (
	KindReply  Kind = "reply"
	KindNotice Kind = "notice"
	KindError  Kind = "error"
)

// TextFormat indicates how a message should be rendered.
type TextFormat string

const (
	FormatMarkdown TextFormat = "markdown"
	FormatPlain    TextFormat = "plain"
)

// Append adds a message stamped with now.
func (t *Transcript) Append(role Role, kind Kind, format TextFormat, text string, now time.Time) {
	ts := now
	t.Messages = append(t.Messages, Message{
		Role:      role,
		Kind:      kind,
		Format:    format,
		Text:      text,
		Timestamp: &ts,
	})
}

// Clone returns a deep copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	out := *t
	out.Messages = make([]Message, len(t.Messages))
	copy(out.Messages, t.Messages)
	for i, m := range out.Messages {
		if m.Timestamp != nil {
			ts := *m.Timestamp
			out.Messages[i].Timestamp = &ts
		}
	}
	return &out
}
