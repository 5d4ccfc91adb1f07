package domain

type ReactionStatus int

const (
	// ReactionConfirmed is the zero value: reactions loaded from the API are settled.
	ReactionConfirmed ReactionStatus = iota
	ReactionPending
	ReactionFailed
)

func (s ReactionStatus) String() string {
	switch s {
	case ReactionPending:
		return "pending"
	case ReactionFailed:
		return "failed"
	default:
		return "confirmed"
	}
}

// Reaction is a single (emoji, user) pair on a message.
// Status is local bookkeeping for optimistic adds and never goes on the wire.
type Reaction struct {
	Emoji  string         `json:"emoji"`
	UserID UserID         `json:"user_id"`
	Status ReactionStatus `json:"-"`
}

// ReactionGroup is the per-emoji view of a message's reactions.
type ReactionGroup struct {
	Emoji   string
	Count   int
	UserIDs []UserID
}

func (g ReactionGroup) Contains(userID UserID) bool {
	for _, id := range g.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
