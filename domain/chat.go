// Package domain contains core concepts of the chat client.
// Entities are cached copies of what the remote API owns, except GroupDraft
// which only lives on the client.
package domain

// Chat is a conversation as listed by the API.
type Chat struct {
	ID          ChatID `json:"id"`
	Name        string `json:"name"`
	LastMessage string `json:"last_message"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
	Avatar      string `json:"avatar"`
	IsGroup     bool   `json:"is_group"`
	IsArchived  bool   `json:"is_archived"`
}

// Normalize enforces the non-negative unread counter.
func (c Chat) Normalize() Chat {
	if c.Unread < 0 {
		c.Unread = 0
	}
	return c
}

// Contact is read-only from the client's perspective.
type Contact struct {
	ID     UserID `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Status string `json:"status"`
}
