package domain

import "time"

// Role identifies the speaker of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Exchange is one stored user/assistant round trip.
// The conversation log is append-only and doubles as a secondary
// retrieval corpus when fact search yields nothing.
type Exchange struct {
	// ID is the unique identifier assigned at insert.
	ID string

	// UserInput is the text the user submitted.
	UserInput string

	// Response is the text the assistant produced.
	Response string

	// Feedback is an optional user rating. Zero means unrated.
	Feedback int

	// Timestamp is when the exchange was recorded.
	Timestamp time.Time
}

// Turn is a single side of an exchange, used when the log is
// flattened into role-tagged entries.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Turns flattens the exchange into its two role-tagged turns.
func (e Exchange) Turns() []Turn {
	return []Turn{
		{Role: RoleUser, Content: e.UserInput, Timestamp: e.Timestamp},
		{Role: RoleAssistant, Content: e.Response, Timestamp: e.Timestamp},
	}
}
