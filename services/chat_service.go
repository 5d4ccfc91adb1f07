//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"

	"messenger/contract"
	"messenger/domain"
	"messenger/moderation"
	"messenger/projection"
	"messenger/runtime"
)

// IChatService is what the presentation layers use: the orchestrator
// operations for the configured user plus render-ready views.
type IChatService interface {
	Bootstrap(ctx context.Context) error
	Subscribe(sink contract.EventSink) func()
	Snapshot() runtime.State
	ChatRows() []projection.ChatRow
	Thread() []projection.MessageView
	Typing() string
	RefreshChats(ctx context.Context) error
	SelectChat(ctx context.Context, chatID domain.ChatID) error
	DeselectChat()
	UpdateDraft(text string)
	SendDraft(ctx context.Context) error
	SendMessage(ctx context.Context, chatID domain.ChatID, text string) (domain.Message, error)
	EditMessage(ctx context.Context, messageID domain.MessageID, text string) error
	DeleteMessage(ctx context.Context, messageID domain.MessageID) error
	React(messageID domain.MessageID, emoji string) error
	CreateGroup(ctx context.Context, name string, memberIDs, adminIDs []domain.UserID) (domain.ChatID, error)
	ArchiveChat(ctx context.Context, chatID domain.ChatID, archived bool) error
	SetSection(section domain.Section, query string) error
}

var _ IChatService = (*ChatService)(nil)

type ChatService struct {
	orchestrator *runtime.Orchestrator
	timeline     *projection.Timeline
	moderator    *moderation.Moderator
	userID       domain.UserID
}

func NewChatService(o *runtime.Orchestrator, moderator *moderation.Moderator, userID domain.UserID) *ChatService {
	return &ChatService{
		orchestrator: o,
		timeline:     projection.NewTimeline(moderator, userID),
		moderator:    moderator,
		userID:       userID,
	}
}

func (s *ChatService) Bootstrap(ctx context.Context) error {
	return s.orchestrator.Bootstrap(ctx)
}

func (s *ChatService) Subscribe(sink contract.EventSink) func() {
	return s.orchestrator.Subscribe(sink)
}

func (s *ChatService) Snapshot() runtime.State {
	return s.orchestrator.Snapshot()
}

// ChatRows returns the chats of the current section.
func (s *ChatService) ChatRows() []projection.ChatRow {
	return projection.ChatList(s.orchestrator.VisibleChats(), s.orchestrator.Snapshot().ActiveChat, s.moderator)
}

// Thread returns the displayed messages, empty when no chat is active.
func (s *ChatService) Thread() []projection.MessageView {
	state := s.orchestrator.Snapshot()
	if state.ActiveChat == nil {
		return nil
	}
	return s.timeline.Build(state.Messages)
}

func (s *ChatService) Typing() string {
	return projection.TypingLabel(s.orchestrator.Snapshot().Typing)
}

func (s *ChatService) RefreshChats(ctx context.Context) error {
	_, err := s.orchestrator.LoadChats(ctx)
	return err
}

func (s *ChatService) SelectChat(ctx context.Context, chatID domain.ChatID) error {
	_, err := s.orchestrator.SelectChat(ctx, chatID)
	return err
}

func (s *ChatService) DeselectChat() {
	s.orchestrator.DeselectChat()
}

func (s *ChatService) UpdateDraft(text string) {
	s.orchestrator.UpdateDraft(text)
}

func (s *ChatService) SendDraft(ctx context.Context) error {
	_, err := s.orchestrator.SendDraft(ctx)
	return err
}

func (s *ChatService) SendMessage(ctx context.Context, chatID domain.ChatID, text string) (domain.Message, error) {
	return s.orchestrator.SendMessage(ctx, chatID, text, s.userID)
}

func (s *ChatService) EditMessage(ctx context.Context, messageID domain.MessageID, text string) error {
	return s.orchestrator.EditMessage(ctx, messageID, text)
}

func (s *ChatService) DeleteMessage(ctx context.Context, messageID domain.MessageID) error {
	return s.orchestrator.DeleteMessage(ctx, messageID)
}

func (s *ChatService) React(messageID domain.MessageID, emoji string) error {
	return s.orchestrator.AddReaction(messageID, emoji, s.userID)
}

func (s *ChatService) CreateGroup(ctx context.Context, name string, memberIDs, adminIDs []domain.UserID) (domain.ChatID, error) {
	return s.orchestrator.CreateGroup(ctx, name, memberIDs, adminIDs)
}

func (s *ChatService) ArchiveChat(ctx context.Context, chatID domain.ChatID, archived bool) error {
	return s.orchestrator.ArchiveChat(ctx, chatID, archived)
}

func (s *ChatService) SetSection(section domain.Section, query string) error {
	return s.orchestrator.SetSection(section, query)
}
