// Package domain contains core concepts of the chat client.
// This file defines messages and the soft delete rules.
package domain

import (
	"encoding/json"
	"messenger/errors"
	"slices"
	"strings"
	"time"
)

// RemovedPlaceholder replaces the text of a soft deleted message.
const RemovedPlaceholder = "This message was deleted"

type Message struct {
	ID        MessageID  `json:"id"`
	Text      string     `json:"text"`
	Time      string     `json:"time"`
	UserID    UserID     `json:"user_id"`
	IsMine    bool       `json:"is_mine"`
	IsRemoved bool       `json:"is_removed,omitempty"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

// editedAtLayouts are tried in order when decoding edited_at.
var editedAtLayouts = []string{time.RFC3339Nano, time.DateTime, "2006-01-02T15:04:05"}

// UnmarshalJSON decodes edited_at leniently: RFC 3339, "2006-01-02 15:04:05"
// or unix seconds. Any other value leaves EditedAt nil instead of failing
// the whole thread.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		EditedAt json.RawMessage `json:"edited_at,omitempty"`
		*alias
	}{
		alias: (*alias)(m),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.EditedAt = parseEditedAt(aux.EditedAt)
	return nil
}

func parseEditedAt(raw json.RawMessage) *time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		at := time.Unix(seconds, 0).UTC()
		return &at
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	for _, layout := range editedAtLayouts {
		if at, err := time.Parse(layout, text); err == nil {
			return &at
		}
	}
	return nil
}

// Normalize applies the removal invariant to a message received from the API.
func (m Message) Normalize() Message {
	if m.IsRemoved {
		m.Text = RemovedPlaceholder
		m.Reactions = nil
	}
	return m
}

// Clone returns a copy that shares no mutable state with m.
func (m Message) Clone() Message {
	m.Reactions = slices.Clone(m.Reactions)
	if m.EditedAt != nil {
		at := *m.EditedAt
		m.EditedAt = &at
	}
	return m
}

func (m Message) CanEdit() bool {
	return !m.IsRemoved
}

// Edit returns the message with its new text and edit stamp.
func (m Message) Edit(text string, at time.Time) (Message, error) {
	if m.IsRemoved {
		return m, errors.ErrMessageRemoved
	}
	if strings.TrimSpace(text) == "" {
		return m, errors.ErrEmptyText
	}
	m = m.Clone()
	m.Text = text
	m.EditedAt = &at
	return m, nil
}

// Remove soft deletes the message. Removing twice is harmless.
func (m Message) Remove() Message {
	m = m.Clone()
	m.IsRemoved = true
	return m.Normalize()
}

// HasReaction reports whether the (emoji, user) pair is already present.
func (m Message) HasReaction(emoji string, userID UserID) bool {
	return slices.ContainsFunc(m.Reactions, func(r Reaction) bool {
		return r.Emoji == emoji && r.UserID == userID
	})
}

// AddReaction appends the reaction unless the pair already exists.
// The boolean tells whether the message changed.
func (m Message) AddReaction(r Reaction) (Message, bool, error) {
	if m.IsRemoved {
		return m, false, errors.ErrMessageRemoved
	}
	if strings.TrimSpace(r.Emoji) == "" {
		return m, false, errors.ErrEmptyEmoji
	}
	if m.HasReaction(r.Emoji, r.UserID) {
		return m, false, nil
	}
	m = m.Clone()
	m.Reactions = append(m.Reactions, r)
	return m, true, nil
}

// SetReactionStatus records the outcome of an optimistic reaction.
func (m Message) SetReactionStatus(emoji string, userID UserID, status ReactionStatus) (Message, bool) {
	idx := slices.IndexFunc(m.Reactions, func(r Reaction) bool {
		return r.Emoji == emoji && r.UserID == userID
	})
	if idx < 0 {
		return m, false
	}
	m = m.Clone()
	m.Reactions[idx].Status = status
	return m, true
}

// ReactionGroups groups reactions by emoji, in order of first appearance.
func (m Message) ReactionGroups() []ReactionGroup {
	var groups []ReactionGroup
	for _, r := range m.Reactions {
		idx := slices.IndexFunc(groups, func(g ReactionGroup) bool { return g.Emoji == r.Emoji })
		if idx < 0 {
			groups = append(groups, ReactionGroup{Emoji: r.Emoji})
			idx = len(groups) - 1
		}
		groups[idx].Count++
		groups[idx].UserIDs = append(groups[idx].UserIDs, r.UserID)
	}
	return groups
}
