//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"messenger/domain"
	"messenger/domain/chat"
	"messenger/domain/event"
	"reflect"
)

// MessengerAPI is the only way to reach the remote chat API.
type MessengerAPI interface {
	GetChats(ctx context.Context) ([]domain.Chat, error)
	GetContacts(ctx context.Context) ([]domain.Contact, error)
	GetMessages(ctx context.Context, chatID domain.ChatID) ([]domain.Message, error)
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (domain.Message, error)
	EditMessage(ctx context.Context, cmd chat.EditMessageCommand) error
	DeleteMessage(ctx context.Context, cmd chat.DeleteMessageCommand) error
	AddReaction(ctx context.Context, cmd chat.AddReactionCommand) error
	SetTyping(ctx context.Context, cmd chat.SetTypingCommand) error
	GetTyping(ctx context.Context, cmd chat.GetTypingCommand) ([]string, error)
	CreateGroup(ctx context.Context, cmd chat.CreateGroupCommand) (domain.ChatID, error)
	ArchiveChat(ctx context.Context, cmd chat.ArchiveChatCommand) error
}

type ISupervisor interface {
	Start(ctx context.Context, worker Worker)
	Wait()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives store events. Implementations must honour ctx.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	Subscribe(sink EventSink) func()
	Sinks() []EventSink
}

// TypingSource is polled by the typing worker while a chat is active.
type TypingSource interface {
	PollTyping(ctx context.Context, chatID domain.ChatID) ([]string, error)
}
