// Package projection turns cached state into render-ready views.
// It never mutates state nor talks to the API.
package projection

import (
	"fmt"
	"strings"
	"time"

	"messenger/domain"
	"messenger/moderation"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

type MessageView struct {
	ID          domain.MessageID
	Text        string
	Time        string
	Mine        bool
	Removed     bool
	EditedLabel string
	Reactions   []ReactionView
	CanEdit     bool
	CanReact    bool
}

// ReactionView is one emoji bubble under a message.
type ReactionView struct {
	Emoji   string
	Count   int
	Mine    bool
	Pending bool
	Failed  bool
}

func (r ReactionView) String() string {
	label := fmt.Sprintf("%s %d", r.Emoji, r.Count)
	switch {
	case r.Failed:
		return label + " !"
	case r.Pending:
		return label + " …"
	default:
		return label
	}
}

// Timeline renders the displayed thread for one user.
type Timeline struct {
	moderator *moderation.Moderator
	me        domain.UserID
	now       func() time.Time
}

func NewTimeline(moderator *moderation.Moderator, me domain.UserID) *Timeline {
	return &Timeline{moderator: moderator, me: me, now: time.Now}
}

func (t *Timeline) WithClock(now func() time.Time) *Timeline {
	t.now = now
	return t
}

func (t *Timeline) Build(messages []domain.Message) []MessageView {
	return lo.Map(messages, func(m domain.Message, _ int) MessageView {
		return t.view(m)
	})
}

func (t *Timeline) view(m domain.Message) MessageView {
	v := MessageView{
		ID:       m.ID,
		Text:     m.Text,
		Time:     m.Time,
		Mine:     m.IsMine,
		Removed:  m.IsRemoved,
		CanEdit:  m.CanEdit() && m.IsMine,
		CanReact: !m.IsRemoved,
	}
	if m.IsRemoved {
		return v
	}
	v.Text = t.moderator.Censor(m.Text)
	if m.EditedAt != nil {
		v.EditedLabel = "edited " + humanize.RelTime(*m.EditedAt, t.now(), "ago", "from now")
	}
	v.Reactions = lo.Map(m.ReactionGroups(), func(g domain.ReactionGroup, _ int) ReactionView {
		view := ReactionView{Emoji: g.Emoji, Count: g.Count, Mine: g.Contains(t.me)}
		if view.Mine {
			mine, _ := lo.Find(m.Reactions, func(r domain.Reaction) bool {
				return r.Emoji == g.Emoji && r.UserID == t.me
			})
			view.Pending = mine.Status == domain.ReactionPending
			view.Failed = mine.Status == domain.ReactionFailed
		}
		return view
	})
	return v
}

// TypingLabel describes who is typing, or returns "" when nobody is.
func TypingLabel(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + " is typing…"
	case 2:
		return names[0] + " and " + names[1] + " are typing…"
	default:
		return strings.Join(names[:2], ", ") + fmt.Sprintf(" and %d others are typing…", len(names)-2)
	}
}
