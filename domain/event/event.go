// Package event defines what the store tells its subscribers.
// Events describe a committed state transition; subscribers re-read the
// snapshot they need and never mutate state through an event.
package event

import (
	"messenger/domain"
	"messenger/errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ChatsLoadedType       Type = "chats_loaded"
	ContactsLoadedType    Type = "contacts_loaded"
	ChatSelectedType      Type = "chat_selected"
	ChatDeselectedType    Type = "chat_deselected"
	MessagesLoadedType    Type = "messages_loaded"
	MessagesFailedType    Type = "messages_failed"
	MessageSentType       Type = "message_sent"
	MessageEditedType     Type = "message_edited"
	MessageRemovedType    Type = "message_removed"
	ReactionAddedType     Type = "reaction_added"
	ReactionSettledType   Type = "reaction_settled"
	DraftChangedType      Type = "draft_changed"
	TypingChangedType     Type = "typing_changed"
	GroupDraftChangedType Type = "group_draft_changed"
	GroupCreatedType      Type = "group_created"
	ChatArchivedType      Type = "chat_archived"
	SectionChangedType    Type = "section_changed"
	NotificationType      Type = "notification"
)

type DomainEvent interface {
	Type() Type
}

type ChatsLoaded struct{ Count int }

func (ChatsLoaded) Type() Type { return ChatsLoadedType }

type ContactsLoaded struct{ Count int }

func (ContactsLoaded) Type() Type { return ContactsLoadedType }

type ChatSelected struct{ ChatID domain.ChatID }

func (ChatSelected) Type() Type { return ChatSelectedType }

type ChatDeselected struct{}

func (ChatDeselected) Type() Type { return ChatDeselectedType }

type MessagesLoaded struct {
	ChatID domain.ChatID
	Count  int
}

func (MessagesLoaded) Type() Type { return MessagesLoadedType }

// MessagesFailed leaves the previous thread on screen.
type MessagesFailed struct{ ChatID domain.ChatID }

func (MessagesFailed) Type() Type { return MessagesFailedType }

type MessageSent struct {
	ChatID  domain.ChatID
	Message domain.Message
}

func (MessageSent) Type() Type { return MessageSentType }

type MessageEdited struct {
	ChatID    domain.ChatID
	MessageID domain.MessageID
}

func (MessageEdited) Type() Type { return MessageEditedType }

type MessageRemoved struct {
	ChatID    domain.ChatID
	MessageID domain.MessageID
}

func (MessageRemoved) Type() Type { return MessageRemovedType }

type ReactionAdded struct {
	ChatID    domain.ChatID
	MessageID domain.MessageID
	Reaction  domain.Reaction
}

func (ReactionAdded) Type() Type { return ReactionAddedType }

type ReactionSettled struct {
	ChatID    domain.ChatID
	MessageID domain.MessageID
	Reaction  domain.Reaction
}

func (ReactionSettled) Type() Type { return ReactionSettledType }

type DraftChanged struct{ Text string }

func (DraftChanged) Type() Type { return DraftChangedType }

type TypingChanged struct {
	ChatID domain.ChatID
	Names  []string
}

func (TypingChanged) Type() Type { return TypingChangedType }

type GroupDraftChanged struct{ Draft domain.GroupDraft }

func (GroupDraftChanged) Type() Type { return GroupDraftChangedType }

type GroupCreated struct {
	ChatID domain.ChatID
	Name   string
}

func (GroupCreated) Type() Type { return GroupCreatedType }

type ChatArchived struct {
	ChatID     domain.ChatID
	IsArchived bool
}

func (ChatArchived) Type() Type { return ChatArchivedType }

type SectionChanged struct {
	Section domain.Section
	Query   string
}

func (SectionChanged) Type() Type { return SectionChangedType }

// Notification is a transient, dismissible failure report.
// It is never stored in the state.
type Notification struct {
	ID        uuid.UUID
	Operation string
	Category  errors.Category
	Message   string
	At        time.Time
}

func (Notification) Type() Type { return NotificationType }

func NewNotification(operation string, err error, at time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		Operation: operation,
		Category:  errors.CategoryOf(err),
		Message:   err.Error(),
		At:        at,
	}
}
