package runtime

import (
	"slices"
	"sync"

	"messenger/domain"
	"messenger/domain/event"

	"github.com/samber/lo"
)

// Phase of the message thread.
type Phase int

const (
	NoActiveChat Phase = iota
	LoadingMessages
	MessagesLoaded
)

func (p Phase) String() string {
	switch p {
	case LoadingMessages:
		return "loading_messages"
	case MessagesLoaded:
		return "messages_loaded"
	default:
		return "no_active_chat"
	}
}

// State is everything the client shows. ThreadChat is the chat whose
// messages are held in Messages; it lags behind ActiveChat while a load
// is in flight or after a load failed.
type State struct {
	Chats       []domain.Chat
	Contacts    []domain.Contact
	ActiveChat  *domain.ChatID
	Phase       Phase
	ThreadChat  *domain.ChatID
	Generation  uint64
	Messages    []domain.Message
	Draft       string
	Typing      []string
	GroupDraft  domain.GroupDraft
	Section     domain.Section
	SearchQuery string
}

func NewState() State {
	return State{
		Chats:    []domain.Chat{},
		Contacts: []domain.Contact{},
		Messages: []domain.Message{},
		Section:  domain.SectionChats,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Chats = slices.Clone(s.Chats)
	s.Contacts = slices.Clone(s.Contacts)
	s.Messages = lo.Map(s.Messages, func(m domain.Message, _ int) domain.Message { return m.Clone() })
	s.Typing = slices.Clone(s.Typing)
	s.GroupDraft = s.GroupDraft.Clone()
	if s.ActiveChat != nil {
		s.ActiveChat = lo.ToPtr(*s.ActiveChat)
	}
	if s.ThreadChat != nil {
		s.ThreadChat = lo.ToPtr(*s.ThreadChat)
	}
	return s
}

func (s State) IsActive(chatID domain.ChatID) bool {
	return s.ActiveChat != nil && *s.ActiveChat == chatID
}

func (s State) ShowsThread(chatID domain.ChatID) bool {
	return s.ThreadChat != nil && *s.ThreadChat == chatID
}

// FindMessage looks a message up in the displayed thread.
func (s State) FindMessage(id domain.MessageID) (domain.Message, int, bool) {
	idx := slices.IndexFunc(s.Messages, func(m domain.Message) bool { return m.ID == id })
	if idx < 0 {
		return domain.Message{}, -1, false
	}
	return s.Messages[idx], idx, true
}

// Reducer computes the next state. It receives a private copy of the
// current state and must not keep references to it. A nil event means
// nothing observable changed.
type Reducer func(State) (State, event.DomainEvent, error)

// Store serialises every state transition. It is never held across I/O.
type Store struct {
	mu      sync.Mutex
	state   State
	publish func(event.DomainEvent)
}

// NewStore calls publish under the store lock, so events reach it in commit
// order. publish must not block.
func NewStore(initial State, publish func(event.DomainEvent)) *Store {
	if publish == nil {
		publish = func(event.DomainEvent) {}
	}
	return &Store{state: initial, publish: publish}
}

// Dispatch applies the reducer and commits its result only when it
// returns no error. It returns a copy of the current state and the
// published event, nil when the reducer reported no change.
func (s *Store) Dispatch(reduce Reducer) (State, event.DomainEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, evt, err := reduce(s.state.Clone())
	if err != nil {
		return s.state.Clone(), nil, err
	}
	s.state = next
	if evt != nil {
		s.publish(evt)
	}
	return next.Clone(), evt, nil
}

// Emit publishes an event that changes no state.
func (s *Store) Emit(evt event.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(evt)
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
