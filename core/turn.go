package core

// Turn groups a user message with the agent messages that followed it,
// representing one request-response cycle in the conversation.
type Turn struct {
	UserMessage   *Message  // nil if the transcript starts with agent output
	AgentMessages []Message // replies, notices and errors for this turn
}

// GroupTurns splits a flat message list into turns. A new turn starts at each
// user message.
func GroupTurns(messages []Message) []Turn {
	var turns []Turn
	var current *Turn

	for i := range messages {
		msg := &messages[i]
		if msg.Role == RoleUser {
			if current != nil {
				turns = append(turns, *current)
			}
			current = &Turn{UserMessage: msg}
			continue
		}
		if current == nil {
			current = &Turn{}
		}
		current.AgentMessages = append(current.AgentMessages, *msg)
	}
	if current != nil {
		turns = append(turns, *current)
	}
	return turns
}

// Failed reports whether any agent message in the turn is an error.
func (t Turn) Failed() bool {
	for _, m := range t.AgentMessages {
		if m.Kind == KindError {
			return true
		}
	}
	return false
}
