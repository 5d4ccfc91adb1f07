package projection

import (
	"messenger/domain"
	"messenger/moderation"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const maxUnreadShown = 99

type ChatRow struct {
	ID          domain.ChatID
	Name        string
	Avatar      string
	LastMessage string
	Time        string
	Unread      string
	IsGroup     bool
	IsArchived  bool
	Active      bool
}

// ChatList renders the visible chats, marking the active one.
func ChatList(chats []domain.Chat, active *domain.ChatID, moderator *moderation.Moderator) []ChatRow {
	return lo.Map(chats, func(c domain.Chat, _ int) ChatRow {
		return ChatRow{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      c.Avatar,
			LastMessage: moderator.Censor(c.LastMessage),
			Time:        c.Time,
			Unread:      UnreadLabel(c.Unread),
			IsGroup:     c.IsGroup,
			IsArchived:  c.IsArchived,
			Active:      active != nil && *active == c.ID,
		}
	})
}

func UnreadLabel(unread int) string {
	switch {
	case unread <= 0:
		return ""
	case unread > maxUnreadShown:
		return humanize.Comma(maxUnreadShown) + "+"
	default:
		return humanize.Comma(int64(unread))
	}
}
