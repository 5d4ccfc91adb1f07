package runtime

import (
	"slices"
	"time"

	"messenger/domain"
	"messenger/domain/event"
	"messenger/errors"

	"github.com/samber/lo"
)

func chatsLoaded(chats []domain.Chat) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		s.Chats = lo.Map(chats, func(c domain.Chat, _ int) domain.Chat { return c.Normalize() })
		return s, event.ChatsLoaded{Count: len(s.Chats)}, nil
	}
}

func contactsLoaded(contacts []domain.Contact) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		s.Contacts = slices.Clone(contacts)
		return s, event.ContactsLoaded{Count: len(s.Contacts)}, nil
	}
}

// chatSelected switches the active chat. Loads issued for the previous
// chat become stale. The thread on screen is kept until the new one arrives.
func chatSelected(chatID domain.ChatID, draft string) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		s.ActiveChat = lo.ToPtr(chatID)
		s.Generation++
		s.Typing = nil
		s.Draft = draft
		return s, event.ChatSelected{ChatID: chatID}, nil
	}
}

func chatDeselected() Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if s.ActiveChat == nil {
			return s, nil, nil
		}
		s.ActiveChat = nil
		s.ThreadChat = nil
		s.Messages = []domain.Message{}
		s.Phase = NoActiveChat
		s.Generation++
		s.Typing = nil
		s.Draft = ""
		return s, event.ChatDeselected{}, nil
	}
}

// loadStarted enters LoadingMessages and hands out a fresh generation.
func loadStarted(chatID domain.ChatID) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if !s.IsActive(chatID) {
			return s, nil, errors.ErrNoActiveChat
		}
		s.Generation++
		s.Phase = LoadingMessages
		return s, nil, nil
	}
}

func messagesLoaded(chatID domain.ChatID, generation uint64, messages []domain.Message) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if s.Generation != generation || !s.IsActive(chatID) {
			return s, nil, errors.ErrStaleResponse
		}
		s.Messages = lo.Map(messages, func(m domain.Message, _ int) domain.Message { return m.Clone().Normalize() })
		s.ThreadChat = lo.ToPtr(chatID)
		s.Phase = MessagesLoaded
		return s, event.MessagesLoaded{ChatID: chatID, Count: len(s.Messages)}, nil
	}
}

// messagesFailed leaves whatever thread was displayed before the load.
func messagesFailed(chatID domain.ChatID, generation uint64) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if s.Generation != generation || !s.IsActive(chatID) {
			return s, nil, errors.ErrStaleResponse
		}
		s.Phase = MessagesLoaded
		return s, event.MessagesFailed{ChatID: chatID}, nil
	}
}

// messageSent appends to the thread when it is the one displayed and clears
// the draft when the chat is still active.
func messageSent(chatID domain.ChatID, msg domain.Message) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if s.ShowsThread(chatID) {
			s.Messages = append(s.Messages, msg.Clone().Normalize())
		}
		if s.IsActive(chatID) {
			s.Draft = ""
		}
		return s, event.MessageSent{ChatID: chatID, Message: msg}, nil
	}
}

func messageEdited(id domain.MessageID, text string, at time.Time) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		msg, idx, ok := s.FindMessage(id)
		if !ok {
			return s, nil, nil
		}
		edited, err := msg.Edit(text, at)
		if err != nil {
			return s, nil, nil
		}
		s.Messages[idx] = edited
		return s, event.MessageEdited{ChatID: lo.FromPtr(s.ThreadChat), MessageID: id}, nil
	}
}

func messageRemoved(id domain.MessageID) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		msg, idx, ok := s.FindMessage(id)
		if !ok || msg.IsRemoved {
			return s, nil, nil
		}
		s.Messages[idx] = msg.Remove()
		return s, event.MessageRemoved{ChatID: lo.FromPtr(s.ThreadChat), MessageID: id}, nil
	}
}

// reactionAdded records an optimistic reaction. A reaction that failed
// before goes back to pending; any other duplicate leaves the state as is
// and reports no event.
func reactionAdded(id domain.MessageID, emoji string, userID domain.UserID) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		msg, idx, ok := s.FindMessage(id)
		if !ok {
			return s, nil, errors.ErrMessageNotFound
		}
		reaction := domain.Reaction{Emoji: emoji, UserID: userID, Status: domain.ReactionPending}
		if failed(msg, emoji, userID) {
			s.Messages[idx], _ = msg.SetReactionStatus(emoji, userID, domain.ReactionPending)
			return s, event.ReactionAdded{ChatID: lo.FromPtr(s.ThreadChat), MessageID: id, Reaction: reaction}, nil
		}
		updated, changed, err := msg.AddReaction(reaction)
		if err != nil || !changed {
			return s, nil, err
		}
		s.Messages[idx] = updated
		return s, event.ReactionAdded{ChatID: lo.FromPtr(s.ThreadChat), MessageID: id, Reaction: reaction}, nil
	}
}

func failed(msg domain.Message, emoji string, userID domain.UserID) bool {
	return lo.ContainsBy(msg.Reactions, func(r domain.Reaction) bool {
		return r.Emoji == emoji && r.UserID == userID && r.Status == domain.ReactionFailed
	})
}

// reactionSettled is a no-op once the thread moved on.
func reactionSettled(chatID domain.ChatID, id domain.MessageID, emoji string, userID domain.UserID, status domain.ReactionStatus) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if !s.ShowsThread(chatID) {
			return s, nil, nil
		}
		msg, idx, ok := s.FindMessage(id)
		if !ok {
			return s, nil, nil
		}
		updated, ok := msg.SetReactionStatus(emoji, userID, status)
		if !ok {
			return s, nil, nil
		}
		s.Messages[idx] = updated
		reaction := domain.Reaction{Emoji: emoji, UserID: userID, Status: status}
		return s, event.ReactionSettled{ChatID: chatID, MessageID: id, Reaction: reaction}, nil
	}
}

func draftChanged(text string) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if s.Draft == text {
			return s, nil, nil
		}
		s.Draft = text
		return s, event.DraftChanged{Text: text}, nil
	}
}

func typingPolled(chatID domain.ChatID, names []string) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if !s.IsActive(chatID) {
			return s, nil, errors.ErrStaleResponse
		}
		if slices.Equal(s.Typing, names) {
			return s, nil, nil
		}
		s.Typing = slices.Clone(names)
		return s, event.TypingChanged{ChatID: chatID, Names: slices.Clone(names)}, nil
	}
}

func typingCleared(chatID domain.ChatID) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if !s.IsActive(chatID) || len(s.Typing) == 0 {
			return s, nil, nil
		}
		s.Typing = nil
		return s, event.TypingChanged{ChatID: chatID}, nil
	}
}

func groupDraftChanged(update func(domain.GroupDraft) (domain.GroupDraft, error)) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		draft, err := update(s.GroupDraft)
		if err != nil {
			return s, nil, err
		}
		s.GroupDraft = draft
		return s, event.GroupDraftChanged{Draft: draft.Clone()}, nil
	}
}

func groupCreated(chatID domain.ChatID, name string) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		s.GroupDraft = domain.GroupDraft{}
		return s, event.GroupCreated{ChatID: chatID, Name: name}, nil
	}
}

func chatArchived(chatID domain.ChatID, archived bool) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		idx := slices.IndexFunc(s.Chats, func(c domain.Chat) bool { return c.ID == chatID })
		if idx >= 0 {
			s.Chats[idx].IsArchived = archived
		}
		return s, event.ChatArchived{ChatID: chatID, IsArchived: archived}, nil
	}
}

func sectionChanged(section domain.Section, query string) Reducer {
	return func(s State) (State, event.DomainEvent, error) {
		if section != domain.SectionSearch {
			query = ""
		}
		s.Section = section
		s.SearchQuery = query
		return s, event.SectionChanged{Section: section, Query: query}, nil
	}
}
