package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Preferences accumulate across turns of one conversation. Unset numeric
// fields are zero.
type Preferences struct {
	Budget                   int      `json:"budget,omitempty"`
	Duration                 int      `json:"duration,omitempty"`
	Interests                []string `json:"interests,omitempty"`
	LastMentionedDestination string   `json:"lastMentionedDestination,omitempty"`
}

func (p Preferences) Clone() Preferences {
	if p.Interests != nil {
		p.Interests = append([]string(nil), p.Interests...)
	}

	return p
}

func TrimTail(messages []Message, maxTurns int) []Message {
	if maxTurns <= 0 {
		return nil
	}

	if len(messages) <= maxTurns {
		return messages
	}

	return messages[len(messages)-maxTurns:]
}
