package runtime_test

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"messenger/contract"
	"messenger/domain"
	"messenger/domain/chat"
	"messenger/domain/event"
	"messenger/errors"
	"messenger/mocks"
	"messenger/runtime"
	"messenger/runtime/workers"

	"github.com/google/go-cmp/cmp"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[domain.ChatID]string
	active *domain.ChatID
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: make(map[domain.ChatID]string)}
}

func (m *memoryDrafts) SaveDraft(chatID domain.ChatID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text == "" {
		delete(m.drafts, chatID)
		return nil
	}
	m.drafts[chatID] = text
	return nil
}

func (m *memoryDrafts) GetDraft(chatID domain.ChatID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drafts[chatID], nil
}

func (m *memoryDrafts) DeleteDraft(chatID domain.ChatID) error {
	return m.SaveDraft(chatID, "")
}

func (m *memoryDrafts) SaveActiveChat(chatID domain.ChatID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = lo.ToPtr(chatID)
	return nil
}

func (m *memoryDrafts) GetActiveChat() (*domain.ChatID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Types() []event.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.events, func(e event.DomainEvent, _ int) event.Type { return e.Type() })
}

func (s *recordingSink) Notifications() []event.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.FilterMap(s.events, func(e event.DomainEvent, _ int) (event.Notification, bool) {
		n, ok := e.(event.Notification)
		return n, ok
	})
}

func testOptions() runtime.Options {
	return runtime.Options{
		UserID:               1,
		TypingPollInterval:   time.Hour,
		TypingClearAfter:     time.Hour,
		TypingNotifyInterval: 0,
		EventBufferSize:      64,
		SinkTimeout:          time.Second,
	}
}

func newTestOrchestrator(t *testing.T, api contract.MessengerAPI, drafts *memoryDrafts, opts runtime.Options) (*runtime.Orchestrator, *recordingSink) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	o := runtime.NewOrchestrator(log, api, drafts, nil, workers.NewSupervisor(log), runtime.NewRegistry(), opts)
	sink := &recordingSink{}
	o.Subscribe(sink)
	o.Start(context.Background())
	t.Cleanup(o.Stop)
	return o, sink
}

func transportErr(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrTransport, msg)
}

var (
	threadA = []domain.Message{
		{ID: 7, Text: "Hi, how are you?", UserID: 2},
		{ID: 8, Text: "Great, thanks", UserID: 1, IsMine: true},
	}
	threadB = []domain.Message{
		{ID: 20, Text: "Meeting at 15:00", UserID: 3},
	}
)

func TestOrchestrator_LoadMessages_Failure_Keeps_Thread(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	// Given chat 1 is displayed
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)
	before := o.Snapshot()

	// When reloading the thread fails
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(nil, transportErr("connection refused")).Times(1)
	_, err = o.LoadMessages(ctx, 1)

	// Then the previous thread stays on screen
	req.ErrorIs(err, errors.ErrTransport)
	after := o.Snapshot()
	if diff := cmp.Diff(before.Messages, after.Messages); diff != "" {
		t.Fatalf("thread changed (-before +after):\n%s", diff)
	}
	req.Equal(runtime.MessagesLoaded, after.Phase)

	// And the user is notified
	req.Eventually(func() bool { return len(sink.Notifications()) == 1 }, time.Second, 5*time.Millisecond)
	n := sink.Notifications()[0]
	req.Equal(errors.CategoryTransport, n.Category)
	req.Equal("load_messages", n.Operation)
}

func TestOrchestrator_Switch_With_Failed_Load_Shows_Previous_Thread(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(2)).Return(nil, transportErr("timeout")).Times(1)

	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)
	_, err = o.SelectChat(ctx, 2)
	req.Error(err)

	state := o.Snapshot()
	req.Equal(domain.ChatID(2), *state.ActiveChat)
	req.Equal(domain.ChatID(1), *state.ThreadChat)
	req.Equal(threadA, state.Messages)
	req.Equal(runtime.MessagesLoaded, state.Phase)
}

func TestOrchestrator_SendMessage_Blank_Text_Does_Nothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	// Given no chat is active
	_, err := o.SendMessage(ctx, 1, "hello", 1)
	req.ErrorIs(err, errors.ErrNoActiveChat)

	// Given chat 1 is active
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().SetTyping(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	_, err = o.SelectChat(ctx, 1)
	req.NoError(err)
	o.UpdateDraft("   ")
	before := o.Snapshot()

	// When only whitespace is sent
	_, err = o.SendMessage(ctx, 1, "   ", 1)

	// Then no request was made and nothing changed
	req.ErrorIs(err, errors.ErrEmptyText)
	if diff := cmp.Diff(before, o.Snapshot()); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
}

func TestOrchestrator_SendMessage_Appends_And_Clears_Draft(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	drafts := newMemoryDrafts()
	o, _ := newTestOrchestrator(t, api, drafts, testOptions())
	ctx := context.Background()
	sent := domain.Message{ID: 9, Text: "See you", UserID: 1, IsMine: true, Time: "10:42"}
	chats := []domain.Chat{{ID: 1, Name: "Maria", LastMessage: "See you"}}

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().SetTyping(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	api.EXPECT().SendMessage(gomock.Any(), chat.SendMessageCommand{ChatID: 1, Text: "See you", UserID: 1}).Return(sent, nil).Times(1)
	api.EXPECT().GetChats(gomock.Any()).Return(chats, nil).Times(1)

	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)
	o.UpdateDraft("See you")
	req.Equal("See you", lo.Must(drafts.GetDraft(1)))

	// When the draft is sent
	msg, err := o.SendDraft(ctx)

	// Then it is appended at the tail, the draft is gone and the chat list refreshed
	req.NoError(err)
	req.Equal(sent, msg)
	state := o.Snapshot()
	req.Equal(append(slices.Clone(threadA), sent), state.Messages)
	req.Empty(state.Draft)
	req.Empty(lo.Must(drafts.GetDraft(1)))
	req.Equal(chats, state.Chats)
}

func TestOrchestrator_AddReaction_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().AddReaction(gomock.Any(), chat.AddReactionCommand{MessageID: 7, Emoji: "👍", UserID: 1}).Return(nil).Times(1)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)

	// When the same reaction is added twice
	req.NoError(o.AddReaction(7, "👍", 1))
	req.NoError(o.AddReaction(7, "👍", 1))

	// Then the message holds one confirmed entry
	req.Eventually(func() bool {
		msg, _, _ := o.Snapshot().FindMessage(7)
		return len(msg.Reactions) == 1 && msg.Reactions[0].Status == domain.ReactionConfirmed
	}, time.Second, 5*time.Millisecond)
	req.NoError(o.AddReaction(7, "👍", 1))
	msg, _, _ := o.Snapshot().FindMessage(7)
	req.Equal([]domain.ReactionGroup{{Emoji: "👍", Count: 1, UserIDs: []domain.UserID{1}}}, msg.ReactionGroups())
}

func TestOrchestrator_AddReaction_Failure_Is_Kept_As_Failed(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	gomock.InOrder(
		api.EXPECT().AddReaction(gomock.Any(), gomock.Any()).Return(transportErr("reset")).Times(1),
		api.EXPECT().AddReaction(gomock.Any(), gomock.Any()).Return(nil).Times(1),
	)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)

	// When the request fails
	req.NoError(o.AddReaction(8, "❤️", 1))

	// Then the reaction stays, marked failed, and the user is told
	req.Eventually(func() bool {
		msg, _, _ := o.Snapshot().FindMessage(8)
		return len(msg.Reactions) == 1 && msg.Reactions[0].Status == domain.ReactionFailed
	}, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool { return len(sink.Notifications()) == 1 }, time.Second, 5*time.Millisecond)

	// When it is retried
	req.NoError(o.AddReaction(8, "❤️", 1))
	req.Eventually(func() bool {
		msg, _, _ := o.Snapshot().FindMessage(8)
		return len(msg.Reactions) == 1 && msg.Reactions[0].Status == domain.ReactionConfirmed
	}, time.Second, 5*time.Millisecond)
}

func TestOrchestrator_Delete_Then_Edit_Keeps_Placeholder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().DeleteMessage(gomock.Any(), chat.DeleteMessageCommand{MessageID: 8}).Return(nil).Times(1)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)

	// Given message 8 is deleted
	req.NoError(o.DeleteMessage(ctx, 8))

	// When it is edited
	err = o.EditMessage(ctx, 8, "changed my mind")

	// Then the edit is refused without a request
	req.ErrorIs(err, errors.ErrMessageRemoved)
	msg, _, ok := o.Snapshot().FindMessage(8)
	req.True(ok)
	req.True(msg.IsRemoved)
	req.Equal(domain.RemovedPlaceholder, msg.Text)

	// And it cannot be reacted to either
	req.ErrorIs(o.AddReaction(8, "👍", 1), errors.ErrMessageRemoved)
}

func TestOrchestrator_EditMessage_Stamps_Edit_Time(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o.WithClock(func() time.Time { return now })
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().EditMessage(gomock.Any(), chat.EditMessageCommand{MessageID: 8, Text: "Great!"}).Return(nil).Times(1)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)

	req.ErrorIs(o.EditMessage(ctx, 8, " "), errors.ErrEmptyText)
	req.ErrorIs(o.EditMessage(ctx, 99, "x"), errors.ErrMessageNotFound)
	req.NoError(o.EditMessage(ctx, 8, "Great!"))

	msg, _, _ := o.Snapshot().FindMessage(8)
	req.Equal("Great!", msg.Text)
	req.Equal(now, *msg.EditedAt)
}

func TestOrchestrator_Typing_Cleared_After_Last_Signal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	opts := testOptions()
	opts.TypingClearAfter = 200 * time.Millisecond
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), opts)
	ctx := context.Background()

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().GetTyping(gomock.Any(), chat.GetTypingCommand{ChatID: 1}).Return([]string{"Maria"}, nil).Times(1)
	api.EXPECT().SetTyping(gomock.Any(), chat.SetTypingCommand{ChatID: 1, UserID: 1}).Return(nil).Times(2)
	_, err := o.SelectChat(ctx, 1)
	req.NoError(err)

	// Given someone is shown typing
	typing, err := o.PollTyping(ctx, 1)
	req.NoError(err)
	req.Equal([]string{"Maria"}, typing)

	// When typing is signaled twice, 120ms apart
	req.NoError(o.SetTyping(1, 1))
	time.Sleep(120 * time.Millisecond)
	req.NoError(o.SetTyping(1, 1))

	// Then the first timer no longer clears the list
	time.Sleep(130 * time.Millisecond)
	req.Equal([]string{"Maria"}, o.Snapshot().Typing)

	// And the second one does
	req.Eventually(func() bool { return len(o.Snapshot().Typing) == 0 }, time.Second, 5*time.Millisecond)
}

func TestOrchestrator_Typing_Notifications_Are_Throttled(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	opts := testOptions()
	opts.TypingNotifyInterval = time.Hour
	drafts := newMemoryDrafts()
	o, _ := newTestOrchestrator(t, api, drafts, opts)

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(nil, nil).Times(1)
	api.EXPECT().SetTyping(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	_, err := o.SelectChat(context.Background(), 1)
	req.NoError(err)

	// When the draft changes three times
	o.UpdateDraft("h")
	o.UpdateDraft("he")
	o.UpdateDraft("hey")

	// Then the API heard of it once and the draft is stored
	req.Equal("hey", o.Snapshot().Draft)
	req.Equal("hey", lo.Must(drafts.GetDraft(1)))
}

func TestOrchestrator_Default_Options_Signal_Every_Draft_Change(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), runtime.DefaultOptions())
	var calls atomic.Int32

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().GetTyping(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	api.EXPECT().SetTyping(gomock.Any(), chat.SetTypingCommand{ChatID: 1, UserID: 1}).
		DoAndReturn(func(context.Context, chat.SetTypingCommand) error {
			calls.Add(1)
			return nil
		}).Times(4)
	_, err := o.SelectChat(context.Background(), 1)
	req.NoError(err)

	// When the draft is typed then erased
	o.UpdateDraft("h")
	o.UpdateDraft("he")
	o.UpdateDraft("hey")
	o.UpdateDraft("")

	// Then every change reached the API
	req.Eventually(func() bool { return calls.Load() == 4 }, time.Second, 5*time.Millisecond)
	req.Empty(o.Snapshot().Draft)
}

func TestOrchestrator_Typing_Poller_Runs_While_Chat_Active(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	opts := testOptions()
	opts.TypingPollInterval = 10 * time.Millisecond
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), opts)

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	api.EXPECT().GetTyping(gomock.Any(), chat.GetTypingCommand{ChatID: 1}).Return([]string{"Alex"}, nil).MinTimes(1)

	// When chat 1 is selected
	_, err := o.SelectChat(context.Background(), 1)
	req.NoError(err)

	// Then the typing list follows the server
	req.Eventually(func() bool { return slices.Equal([]string{"Alex"}, o.Snapshot().Typing) }, time.Second, 5*time.Millisecond)

	// When the chat is left the list is cleared
	o.DeselectChat()
	req.Empty(o.Snapshot().Typing)
	req.Equal(runtime.NoActiveChat, o.Snapshot().Phase)
}

func TestOrchestrator_PollTyping_For_Inactive_Chat_Is_Stale(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())

	api.EXPECT().GetTyping(gomock.Any(), gomock.Any()).Return([]string{"Alex"}, nil).Times(1)

	_, err := o.PollTyping(context.Background(), 3)

	req.ErrorIs(err, errors.ErrStaleResponse)
	req.Empty(o.Snapshot().Typing)
	time.Sleep(20 * time.Millisecond)
	req.Empty(sink.Notifications())
}

func TestOrchestrator_CreateGroup_Resets_Draft_And_Reloads(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	chats := []domain.Chat{{ID: 101, Name: "Team", IsGroup: true, Avatar: "TE"}}

	api.EXPECT().CreateGroup(gomock.Any(), chat.CreateGroupCommand{
		Name: "Team", MemberIDs: []domain.UserID{2, 3}, AdminIDs: []domain.UserID{2},
	}).Return(domain.ChatID(101), nil).Times(1)
	api.EXPECT().GetChats(gomock.Any()).Return(chats, nil).Times(1)

	// Given a group draft
	o.SetGroupName("Team")
	o.ToggleGroupMember(2)
	o.ToggleGroupMember(3)
	req.NoError(o.ToggleGroupAdmin(2))

	// When it is created
	id, err := o.CreateGroupFromDraft(context.Background())

	// Then the draft is reset and the chat list reloaded
	req.NoError(err)
	req.Equal(domain.ChatID(101), id)
	state := o.Snapshot()
	req.True(state.GroupDraft.IsEmpty())
	req.Equal(chats, state.Chats)
}

func TestOrchestrator_CreateGroup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		members []domain.UserID
		admins  []domain.UserID
		wantErr error
	}{
		{name: "empty name", group: "", members: []domain.UserID{2}, wantErr: errors.ErrEmptyGroupName},
		{name: "blank name", group: "  ", members: []domain.UserID{2}, wantErr: errors.ErrEmptyGroupName},
		{name: "no members", group: "Team", wantErr: errors.ErrNoMembers},
		{name: "admin outside members", group: "Team", members: []domain.UserID{2}, admins: []domain.UserID{3}, wantErr: errors.ErrAdminNotMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			api := mocks.NewMockMessengerAPI(ctrl)
			o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())

			// Given a group draft in progress
			o.SetGroupName("Draft")
			o.ToggleGroupMember(5)
			before := o.Snapshot().GroupDraft

			// When an invalid group is created
			_, err := o.CreateGroup(context.Background(), tt.group, tt.members, tt.admins)

			// Then nothing is sent and the draft is untouched
			req.ErrorIs(err, tt.wantErr)
			req.Equal(before, o.Snapshot().GroupDraft)
			req.Eventually(func() bool {
				n := sink.Notifications()
				return len(n) == 1 && n[0].Category == errors.CategoryValidation
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestOrchestrator_Late_Response_Of_Previous_Chat_Is_Discarded(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	// Given chat 1 answers late, ignoring cancellation
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).
		DoAndReturn(func(context.Context, domain.ChatID) ([]domain.Message, error) {
			close(started)
			<-release
			return threadA, nil
		}).Times(1)
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(2)).Return(threadB, nil).Times(1)

	resultA := make(chan error, 1)
	go func() {
		_, err := o.SelectChat(ctx, 1)
		resultA <- err
	}()
	<-started

	// When chat 2 is selected before chat 1 answered
	messages, err := o.SelectChat(ctx, 2)
	req.NoError(err)
	req.Equal(threadB, messages)
	close(release)

	// Then chat 1's response is dropped
	req.ErrorIs(<-resultA, errors.ErrStaleResponse)
	state := o.Snapshot()
	req.Equal(domain.ChatID(2), *state.ActiveChat)
	req.Equal(domain.ChatID(2), *state.ThreadChat)
	req.Equal(threadB, state.Messages)

	// And it raised no notification
	req.Eventually(func() bool {
		return slices.Contains(sink.Types(), event.MessagesLoadedType)
	}, time.Second, 5*time.Millisecond)
	req.Empty(sink.Notifications())
}

func TestOrchestrator_Switch_Cancels_Previous_Load(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	started := make(chan struct{})
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).
		DoAndReturn(func(ctx context.Context, _ domain.ChatID) ([]domain.Message, error) {
			close(started)
			<-ctx.Done()
			return nil, fmt.Errorf("%w: %w", errors.ErrTransport, ctx.Err())
		}).Times(1)
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(2)).Return(threadB, nil).Times(1)

	resultA := make(chan error, 1)
	go func() {
		_, err := o.SelectChat(ctx, 1)
		resultA <- err
	}()
	<-started

	_, err := o.SelectChat(ctx, 2)
	req.NoError(err)

	req.ErrorIs(<-resultA, errors.ErrStaleResponse)
	req.Equal(threadB, o.Snapshot().Messages)
	time.Sleep(20 * time.Millisecond)
	req.Empty(sink.Notifications())
}

func TestOrchestrator_Bootstrap_Restores_Session(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	drafts := newMemoryDrafts()
	req.NoError(drafts.SaveActiveChat(2))
	req.NoError(drafts.SaveDraft(2, "half written"))
	o, _ := newTestOrchestrator(t, api, drafts, testOptions())

	chats := []domain.Chat{{ID: 1, Name: "Maria"}, {ID: 2, Name: "Dev team", IsGroup: true}}
	contacts := []domain.Contact{{ID: 2, Name: "Maria"}}
	api.EXPECT().GetChats(gomock.Any()).Return(chats, nil).Times(1)
	api.EXPECT().GetContacts(gomock.Any()).Return(contacts, nil).Times(1)
	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(2)).Return(threadB, nil).Times(1)

	req.NoError(o.Bootstrap(context.Background()))

	state := o.Snapshot()
	req.Equal(chats, state.Chats)
	req.Equal(contacts, state.Contacts)
	req.Equal(domain.ChatID(2), *state.ActiveChat)
	req.Equal("half written", state.Draft)
	req.Equal(threadB, state.Messages)
}

func TestOrchestrator_Bootstrap_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())

	api.EXPECT().GetChats(gomock.Any()).Return(nil, transportErr("refused")).Times(1)
	api.EXPECT().GetContacts(gomock.Any()).Return(nil, nil).Times(1)

	req.ErrorIs(o.Bootstrap(context.Background()), errors.ErrTransport)
	req.Empty(o.Snapshot().Chats)
}

func TestOrchestrator_Archive_And_Sections(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	ctx := context.Background()

	api.EXPECT().GetChats(gomock.Any()).Return([]domain.Chat{{ID: 1, Name: "Maria"}, {ID: 2, Name: "Dev team"}}, nil).Times(1)
	api.EXPECT().ArchiveChat(gomock.Any(), chat.ArchiveChatCommand{ChatID: 2, IsArchived: true}).Return(nil).Times(1)
	_, err := o.LoadChats(ctx)
	req.NoError(err)

	// When chat 2 is archived
	req.NoError(o.ArchiveChat(ctx, 2, true))

	// Then it only shows in the archive
	req.Equal([]domain.ChatID{1}, chatIDs(o.VisibleChats()))
	req.NoError(o.SetSection(domain.SectionArchive, ""))
	req.Equal([]domain.ChatID{2}, chatIDs(o.VisibleChats()))
	req.NoError(o.SetSection(domain.SectionSearch, "MAR"))
	req.Equal([]domain.ChatID{1}, chatIDs(o.VisibleChats()))
	req.ErrorIs(o.SetSection("settings", ""), errors.ErrUnknownSection)
}

func TestOrchestrator_Events_Follow_Commit_Order(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, sink := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())

	api.EXPECT().GetMessages(gomock.Any(), domain.ChatID(1)).Return(threadA, nil).Times(1)
	_, err := o.SelectChat(context.Background(), 1)
	req.NoError(err)
	o.DeselectChat()

	want := []event.Type{event.ChatSelectedType, event.MessagesLoadedType, event.ChatDeselectedType}
	req.Eventually(func() bool { return slices.Equal(want, sink.Types()) }, time.Second, 5*time.Millisecond)
}

func TestOrchestrator_Stop_Is_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMessengerAPI(ctrl)
	o, _ := newTestOrchestrator(t, api, newMemoryDrafts(), testOptions())
	o.Stop()
	o.Stop()
}

func chatIDs(chats []domain.Chat) []domain.ChatID {
	return lo.Map(chats, func(c domain.Chat, _ int) domain.ChatID { return c.ID })
}
