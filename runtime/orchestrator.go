// Package runtime owns the client state and every task that changes it:
// API calls, the typing poller, the typing clear timer and optimistic
// reactions. It orchestrates the system without containing domain rules.
package runtime

import (
	"context"
	goerrors "errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"messenger/contract"
	"messenger/domain"
	"messenger/domain/chat"
	"messenger/domain/event"
	"messenger/errors"
	"messenger/observability"
	"messenger/repositories"
	"messenger/runtime/workers"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Operation names used in logs and notifications.
const (
	opLoadChats    = "load_chats"
	opLoadContacts = "load_contacts"
	opLoadMessages = "load_messages"
	opSelectChat   = "select_chat"
	opPollTyping   = "poll_typing"
	opGroupDraft   = "group_draft"
	opSetSection   = "set_section"
)

var _ contract.TypingSource = (*Orchestrator)(nil)

type Options struct {
	UserID               domain.UserID
	TypingPollInterval   time.Duration
	TypingClearAfter     time.Duration
	TypingNotifyInterval time.Duration
	EventBufferSize      int
	SinkTimeout          time.Duration
}

func DefaultOptions() Options {
	return Options{
		UserID:               1,
		TypingPollInterval:   3 * time.Second,
		TypingClearAfter:     5 * time.Second,
		TypingNotifyInterval: 0,
		EventBufferSize:      256,
		SinkTimeout:          time.Second,
	}
}

// Orchestrator is the client state machine. Every method is safe for
// concurrent use. Start must be called before events reach subscribers
// and Stop before the process exits.
type Orchestrator struct {
	mu            sync.Mutex
	log           *slog.Logger
	api           contract.MessengerAPI
	drafts        repositories.IDraftRepository
	metrics       *observability.Metrics
	supervisor    contract.ISupervisor
	registry      contract.IRegistry
	store         *Store
	events        chan event.DomainEvent
	typingClear   *Debouncer
	typingLimiter *rate.Limiter
	opts          Options
	now           func() time.Time

	ctx        context.Context
	cancel     context.CancelFunc
	loadCancel context.CancelFunc
	pollCancel context.CancelFunc
	inflight   sync.WaitGroup
	started    bool
	stopped    bool
	stopOnce   sync.Once
}

func NewOrchestrator(log *slog.Logger, api contract.MessengerAPI, drafts repositories.IDraftRepository,
	metrics *observability.Metrics, supervisor contract.ISupervisor, registry contract.IRegistry, opts Options) *Orchestrator {
	limit := rate.Inf
	if opts.TypingNotifyInterval > 0 {
		limit = rate.Every(opts.TypingNotifyInterval)
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		log:           log,
		api:           api,
		drafts:        drafts,
		metrics:       metrics,
		supervisor:    supervisor,
		registry:      registry,
		events:        make(chan event.DomainEvent, max(opts.EventBufferSize, 1)),
		typingClear:   NewDebouncer(),
		typingLimiter: rate.NewLimiter(limit, 1),
		opts:          opts,
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
	}
	o.store = NewStore(NewState(), o.publish)
	return o
}

// WithClock replaces the clock used for edit stamps and notifications.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Start runs the event fanout under supervision. Canceling ctx has the
// same effect on background tasks as Stop, without waiting for them.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started || o.stopped {
		return
	}
	o.started = true
	o.log.Info("Starting orchestrator")
	o.supervisor.Start(o.ctx, workers.NewEventFanout(o.log, o.events, o.registry, o.opts.SinkTimeout))
	o.goLocked(func(context.Context) {
		select {
		case <-ctx.Done():
			o.cancel()
		case <-o.ctx.Done():
		}
	})
}

// Stop cancels every scheduled task and waits for all background goroutines.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		o.log.Info("Requesting orchestrator shutdown")
		o.mu.Lock()
		o.stopped = true
		o.cancelThreadLocked()
		o.mu.Unlock()

		o.typingClear.Stop()
		o.cancel()
		o.supervisor.Wait()
		o.inflight.Wait()
		o.log.Debug("Orchestrator stopped")
	})
}

// Subscribe registers a sink for every future event and returns the func
// removing it.
func (o *Orchestrator) Subscribe(sink contract.EventSink) func() {
	return o.registry.Subscribe(sink)
}

func (o *Orchestrator) Snapshot() State {
	return o.store.Snapshot()
}

// Bootstrap loads chats and contacts concurrently, then reopens the last
// active chat when it still exists.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := o.LoadChats(ctx)
		return err
	})
	g.Go(func() error {
		_, err := o.LoadContacts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	active, err := o.drafts.GetActiveChat()
	if err != nil {
		o.log.Warn("Could not read last active chat", "error", err)
		return nil
	}
	if active == nil {
		return nil
	}
	exists := lo.ContainsBy(o.store.Snapshot().Chats, func(c domain.Chat) bool { return c.ID == *active })
	if !exists {
		o.log.Debug("Last active chat is gone", "chat_id", *active)
		return nil
	}
	_, err = o.SelectChat(ctx, *active)
	return err
}

// LoadChats replaces the chat cache. On failure the cache is untouched.
func (o *Orchestrator) LoadChats(ctx context.Context) ([]domain.Chat, error) {
	chats, err := o.api.GetChats(ctx)
	if err != nil {
		return nil, o.fail(opLoadChats, err)
	}
	state, _, _ := o.store.Dispatch(chatsLoaded(chats))
	return state.Chats, nil
}

// LoadContacts replaces the contact cache. On failure the cache is untouched.
func (o *Orchestrator) LoadContacts(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := o.api.GetContacts(ctx)
	if err != nil {
		return nil, o.fail(opLoadContacts, err)
	}
	state, _, _ := o.store.Dispatch(contactsLoaded(contacts))
	return state.Contacts, nil
}

// SelectChat makes chatID the active chat and loads its history.
// A load still running for the previous chat is canceled and its
// response, if any, is discarded.
func (o *Orchestrator) SelectChat(ctx context.Context, chatID domain.ChatID) ([]domain.Message, error) {
	if chatID <= 0 {
		return nil, o.fail(opSelectChat, errors.ErrInvalidCommand)
	}
	draft, err := o.drafts.GetDraft(chatID)
	if err != nil {
		o.log.Warn("Could not restore draft", "chat_id", chatID, "error", err)
	}

	o.mu.Lock()
	o.cancelThreadLocked()
	o.typingClear.Cancel()
	o.store.Dispatch(chatSelected(chatID, draft))
	o.startPollerLocked(chatID)
	loadCtx, generation, err := o.beginLoadLocked(ctx, chatID)
	o.mu.Unlock()
	if err != nil {
		return nil, o.fail(opLoadMessages, err)
	}

	if err := o.drafts.SaveActiveChat(chatID); err != nil {
		o.log.Warn("Could not remember active chat", "chat_id", chatID, "error", err)
	}
	return o.fetchMessages(loadCtx, chatID, generation)
}

// DeselectChat goes back to NoActiveChat and stops the chat's tasks.
func (o *Orchestrator) DeselectChat() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelThreadLocked()
	o.typingClear.Cancel()
	o.store.Dispatch(chatDeselected())
}

// LoadMessages reloads the history of the active chat. Only the most
// recent load is applied; an older response returns ErrStaleResponse.
func (o *Orchestrator) LoadMessages(ctx context.Context, chatID domain.ChatID) ([]domain.Message, error) {
	o.mu.Lock()
	loadCtx, generation, err := o.beginLoadLocked(ctx, chatID)
	o.mu.Unlock()
	if err != nil {
		return nil, o.fail(opLoadMessages, err)
	}
	return o.fetchMessages(loadCtx, chatID, generation)
}

func (o *Orchestrator) beginLoadLocked(ctx context.Context, chatID domain.ChatID) (context.Context, uint64, error) {
	state, _, err := o.store.Dispatch(loadStarted(chatID))
	if err != nil {
		return nil, 0, err
	}
	if o.loadCancel != nil {
		o.loadCancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	o.loadCancel = cancel
	return loadCtx, state.Generation, nil
}

func (o *Orchestrator) fetchMessages(ctx context.Context, chatID domain.ChatID, generation uint64) ([]domain.Message, error) {
	messages, err := o.api.GetMessages(ctx, chatID)
	if err != nil {
		if _, _, staleErr := o.store.Dispatch(messagesFailed(chatID, generation)); staleErr != nil {
			return nil, o.fail(opLoadMessages, staleErr)
		}
		return nil, o.fail(opLoadMessages, err)
	}
	state, _, err := o.store.Dispatch(messagesLoaded(chatID, generation, messages))
	if err != nil {
		return nil, o.fail(opLoadMessages, err)
	}
	return state.Messages, nil
}

func (o *Orchestrator) startPollerLocked(chatID domain.ChatID) {
	pollCtx, cancel := context.WithCancel(o.ctx)
	o.pollCancel = cancel
	o.supervisor.Start(pollCtx, workers.NewTypingPollWorker(o.log, o, chatID, o.opts.TypingPollInterval))
}

func (o *Orchestrator) cancelThreadLocked() {
	if o.loadCancel != nil {
		o.loadCancel()
		o.loadCancel = nil
	}
	if o.pollCancel != nil {
		o.pollCancel()
		o.pollCancel = nil
	}
}

// SendMessage posts text to chatID. Blank text or no active chat fail
// before any network call. On success the message is appended to the
// displayed thread, the draft is cleared and the chat list refreshed.
func (o *Orchestrator) SendMessage(ctx context.Context, chatID domain.ChatID, text string, userID domain.UserID) (domain.Message, error) {
	cmd := chat.SendMessageCommand{ChatID: chatID, Text: text, UserID: userID}
	if o.store.Snapshot().ActiveChat == nil {
		return domain.Message{}, o.fail(string(cmd.Action()), errors.ErrNoActiveChat)
	}
	if err := chat.Validate(cmd); err != nil {
		return domain.Message{}, o.fail(string(cmd.Action()), err)
	}

	msg, err := o.api.SendMessage(ctx, cmd)
	if err != nil {
		return domain.Message{}, o.fail(string(cmd.Action()), err)
	}
	o.store.Dispatch(messageSent(chatID, msg))
	if err := o.drafts.DeleteDraft(chatID); err != nil {
		o.log.Warn("Could not delete draft", "chat_id", chatID, "error", err)
	}
	if _, err := o.LoadChats(ctx); err != nil {
		o.log.Debug("Chat list not refreshed after send", "error", err)
	}
	return msg, nil
}

// SendDraft sends the current draft to the active chat as the configured user.
func (o *Orchestrator) SendDraft(ctx context.Context) (domain.Message, error) {
	state := o.store.Snapshot()
	if state.ActiveChat == nil {
		return domain.Message{}, o.fail(string(chat.ActionSendMessage), errors.ErrNoActiveChat)
	}
	return o.SendMessage(ctx, *state.ActiveChat, state.Draft, o.opts.UserID)
}

// EditMessage replaces the text of a message of the displayed thread.
func (o *Orchestrator) EditMessage(ctx context.Context, messageID domain.MessageID, text string) error {
	cmd := chat.EditMessageCommand{MessageID: messageID, Text: text}
	msg, _, ok := o.store.Snapshot().FindMessage(messageID)
	if !ok {
		return o.fail(string(cmd.Action()), errors.ErrMessageNotFound)
	}
	if _, err := msg.Edit(text, o.now()); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	if err := chat.Validate(cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}

	if err := o.api.EditMessage(ctx, cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	o.store.Dispatch(messageEdited(messageID, text, o.now()))
	return nil
}

// DeleteMessage soft deletes a message of the displayed thread.
func (o *Orchestrator) DeleteMessage(ctx context.Context, messageID domain.MessageID) error {
	cmd := chat.DeleteMessageCommand{MessageID: messageID}
	msg, _, ok := o.store.Snapshot().FindMessage(messageID)
	if !ok {
		return o.fail(string(cmd.Action()), errors.ErrMessageNotFound)
	}
	if msg.IsRemoved {
		return o.fail(string(cmd.Action()), errors.ErrMessageRemoved)
	}

	if err := o.api.DeleteMessage(ctx, cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	o.store.Dispatch(messageRemoved(messageID))
	return nil
}

// AddReaction shows the reaction right away as pending and posts it in the
// background. The outcome marks it confirmed or failed; nothing is rolled
// back. Adding a reaction already present does nothing.
func (o *Orchestrator) AddReaction(messageID domain.MessageID, emoji string, userID domain.UserID) error {
	cmd := chat.AddReactionCommand{MessageID: messageID, Emoji: emoji, UserID: userID}
	if err := chat.Validate(cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	state, evt, err := o.store.Dispatch(reactionAdded(messageID, emoji, userID))
	if err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	if evt == nil {
		return nil
	}

	chatID := lo.FromPtr(state.ThreadChat)
	o.goTracked(func(ctx context.Context) {
		status := domain.ReactionConfirmed
		if err := o.api.AddReaction(ctx, cmd); err != nil {
			status = domain.ReactionFailed
			_ = o.fail(string(cmd.Action()), err)
		}
		o.store.Dispatch(reactionSettled(chatID, messageID, emoji, userID, status))
	})
	return nil
}

// UpdateDraft sets the draft, stores it for the active chat and signals
// typing on every change, clearing the draft included.
func (o *Orchestrator) UpdateDraft(text string) {
	state, evt, _ := o.store.Dispatch(draftChanged(text))
	if state.ActiveChat == nil {
		return
	}
	chatID := *state.ActiveChat
	if err := o.drafts.SaveDraft(chatID, text); err != nil {
		o.log.Warn("Could not store draft", "chat_id", chatID, "error", err)
	}
	if evt != nil {
		_ = o.SetTyping(chatID, o.opts.UserID)
	}
}

// SetTyping tells the API the user is typing and (re)arms the timer
// clearing the typing list. A positive notify interval throttles the API
// calls; zero sends every one.
func (o *Orchestrator) SetTyping(chatID domain.ChatID, userID domain.UserID) error {
	cmd := chat.SetTypingCommand{ChatID: chatID, UserID: userID}
	if err := chat.Validate(cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	if o.typingLimiter.Allow() {
		o.goTracked(func(ctx context.Context) {
			if err := o.api.SetTyping(ctx, cmd); err != nil {
				_ = o.fail(string(cmd.Action()), err)
			}
		})
	}
	o.typingClear.Trigger(o.opts.TypingClearAfter, func() {
		o.store.Dispatch(typingCleared(chatID))
	})
	return nil
}

// PollTyping replaces the typing list of chatID while it is active.
func (o *Orchestrator) PollTyping(ctx context.Context, chatID domain.ChatID) ([]string, error) {
	names, err := o.api.GetTyping(ctx, chat.GetTypingCommand{ChatID: chatID})
	if err != nil {
		if ctx.Err() != nil {
			return nil, o.fail(opPollTyping, errors.ErrStaleResponse)
		}
		return nil, o.fail(opPollTyping, err)
	}
	state, _, err := o.store.Dispatch(typingPolled(chatID, names))
	if err != nil {
		return nil, o.fail(opPollTyping, err)
	}
	return state.Typing, nil
}

// CreateGroup validates the group before any network call. On success the
// group draft is reset and the chat list refreshed.
func (o *Orchestrator) CreateGroup(ctx context.Context, name string, memberIDs, adminIDs []domain.UserID) (domain.ChatID, error) {
	cmd := chat.CreateGroupCommand{
		Name:      name,
		MemberIDs: append([]domain.UserID{}, memberIDs...),
		AdminIDs:  append([]domain.UserID{}, adminIDs...),
	}
	if err := chat.Validate(cmd); err != nil {
		return 0, o.fail(string(cmd.Action()), err)
	}
	if lo.SomeBy(cmd.AdminIDs, func(id domain.UserID) bool { return !slices.Contains(cmd.MemberIDs, id) }) {
		return 0, o.fail(string(cmd.Action()), errors.ErrAdminNotMember)
	}

	chatID, err := o.api.CreateGroup(ctx, cmd)
	if err != nil {
		return 0, o.fail(string(cmd.Action()), err)
	}
	o.store.Dispatch(groupCreated(chatID, name))
	if _, err := o.LoadChats(ctx); err != nil {
		o.log.Debug("Chat list not refreshed after group creation", "error", err)
	}
	return chatID, nil
}

// CreateGroupFromDraft creates the group described by the group draft.
func (o *Orchestrator) CreateGroupFromDraft(ctx context.Context) (domain.ChatID, error) {
	draft := o.store.Snapshot().GroupDraft
	return o.CreateGroup(ctx, draft.Name, draft.Members, draft.Admins)
}

func (o *Orchestrator) SetGroupName(name string) {
	o.store.Dispatch(groupDraftChanged(func(d domain.GroupDraft) (domain.GroupDraft, error) {
		return d.WithName(name), nil
	}))
}

func (o *Orchestrator) ToggleGroupMember(userID domain.UserID) {
	o.store.Dispatch(groupDraftChanged(func(d domain.GroupDraft) (domain.GroupDraft, error) {
		return d.ToggleMember(userID), nil
	}))
}

// ToggleGroupAdmin fails for a user who is not a member of the draft.
func (o *Orchestrator) ToggleGroupAdmin(userID domain.UserID) error {
	_, _, err := o.store.Dispatch(groupDraftChanged(func(d domain.GroupDraft) (domain.GroupDraft, error) {
		return d.ToggleAdmin(userID)
	}))
	if err != nil {
		return o.fail(opGroupDraft, err)
	}
	return nil
}

// ArchiveChat moves a chat in or out of the archive.
func (o *Orchestrator) ArchiveChat(ctx context.Context, chatID domain.ChatID, archived bool) error {
	cmd := chat.ArchiveChatCommand{ChatID: chatID, IsArchived: archived}
	if err := chat.Validate(cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	if err := o.api.ArchiveChat(ctx, cmd); err != nil {
		return o.fail(string(cmd.Action()), err)
	}
	o.store.Dispatch(chatArchived(chatID, archived))
	return nil
}

// SetSection changes the sidebar section. The query only applies to search.
func (o *Orchestrator) SetSection(section domain.Section, query string) error {
	parsed, err := domain.ParseSection(string(section))
	if err != nil {
		return o.fail(opSetSection, err)
	}
	o.store.Dispatch(sectionChanged(parsed, query))
	return nil
}

// VisibleChats returns the cached chats filtered by the current section.
func (o *Orchestrator) VisibleChats() []domain.Chat {
	state := o.store.Snapshot()
	return domain.FilterChats(state.Chats, state.Section, state.SearchQuery)
}

// fail logs err and raises a notification, except for stale responses
// which are silently discarded. It returns err.
func (o *Orchestrator) fail(operation string, err error) error {
	if goerrors.Is(err, errors.ErrStaleResponse) {
		o.log.Debug("Discarding stale response", "operation", operation)
		return err
	}
	n := event.NewNotification(operation, err, o.now())
	o.log.Warn("Operation failed", "operation", operation, "category", n.Category, "error", err)
	o.metrics.IncNotification(string(n.Category))
	o.store.Emit(n)
	return err
}

// publish never blocks: the store calls it under its lock.
func (o *Orchestrator) publish(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.metrics.IncDroppedEvent()
		o.log.Warn("Event buffer full, dropping event", "type", evt.Type())
	}
}

func (o *Orchestrator) goTracked(fn func(ctx context.Context)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.goLocked(fn)
}

func (o *Orchestrator) goLocked(fn func(ctx context.Context)) {
	if o.stopped {
		return
	}
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		fn(o.ctx)
	}()
}
