package chat

import (
	"messenger/domain"
)

// Action tags every POST body sent to the API.
type Action string

const (
	ActionSendMessage   Action = "send_message"
	ActionEditMessage   Action = "edit_message"
	ActionDeleteMessage Action = "delete_message"
	ActionAddReaction   Action = "add_reaction"
	ActionSetTyping     Action = "set_typing"
	ActionGetTyping     Action = "get_typing"
	ActionCreateGroup   Action = "create_group"
	ActionArchiveChat   Action = "archive_chat"
)

// Query names the GET collections.
type Query string

const (
	QueryChats    Query = "chats"
	QueryContacts Query = "contacts"
	QueryMessages Query = "messages"
)

type Command interface {
	Action() Action
}

type SendMessageCommand struct {
	ChatID domain.ChatID `json:"chat_id" validate:"gt=0"`
	Text   string        `json:"text" validate:"notblank"`
	UserID domain.UserID `json:"user_id" validate:"gt=0"`
}

func (SendMessageCommand) Action() Action { return ActionSendMessage }

type EditMessageCommand struct {
	MessageID domain.MessageID `json:"message_id" validate:"gt=0"`
	Text      string           `json:"text" validate:"notblank"`
}

func (EditMessageCommand) Action() Action { return ActionEditMessage }

type DeleteMessageCommand struct {
	MessageID domain.MessageID `json:"message_id" validate:"gt=0"`
}

func (DeleteMessageCommand) Action() Action { return ActionDeleteMessage }

type AddReactionCommand struct {
	MessageID domain.MessageID `json:"message_id" validate:"gt=0"`
	Emoji     string           `json:"emoji" validate:"notblank"`
	UserID    domain.UserID    `json:"user_id" validate:"gt=0"`
}

func (AddReactionCommand) Action() Action { return ActionAddReaction }

type SetTypingCommand struct {
	ChatID domain.ChatID `json:"chat_id" validate:"gt=0"`
	UserID domain.UserID `json:"user_id" validate:"gt=0"`
}

func (SetTypingCommand) Action() Action { return ActionSetTyping }

type GetTypingCommand struct {
	ChatID domain.ChatID `json:"chat_id" validate:"gt=0"`
}

func (GetTypingCommand) Action() Action { return ActionGetTyping }

// CreateGroupCommand only validates its fields one by one. The orchestrator
// rejects admins that are not members before sending it.
type CreateGroupCommand struct {
	Name      string          `json:"name" validate:"notblank"`
	MemberIDs []domain.UserID `json:"member_ids" validate:"min=1,dive,gt=0"`
	AdminIDs  []domain.UserID `json:"admin_ids" validate:"dive,gt=0"`
}

func (CreateGroupCommand) Action() Action { return ActionCreateGroup }

type ArchiveChatCommand struct {
	ChatID     domain.ChatID `json:"chat_id" validate:"gt=0"`
	IsArchived bool          `json:"is_archived"`
}

func (ArchiveChatCommand) Action() Action { return ActionArchiveChat }
