package apitest

import "messenger/domain"

// Seed fills the fake with a small demo workspace for local runs.
func (f *FakeAPI) Seed() {
	f.SetContacts(
		domain.Contact{ID: 2, Name: "Maria Garcia", Avatar: "MG", Status: "online"},
		domain.Contact{ID: 3, Name: "Alex Chen", Avatar: "AC", Status: "away"},
		domain.Contact{ID: 4, Name: "Sam Okafor", Avatar: "SO", Status: "offline"},
	)
	f.SetChats(
		domain.Chat{ID: 1, Name: "Maria Garcia", Avatar: "MG", LastMessage: "See you at the standup", Time: "09:12", Unread: 2},
		domain.Chat{ID: 2, Name: "Dev team", Avatar: "DE", LastMessage: "Deploy is green", Time: "08:47", IsGroup: true},
		domain.Chat{ID: 3, Name: "Alex Chen", Avatar: "AC", LastMessage: "Thanks!", Time: "Mon"},
		domain.Chat{ID: 4, Name: "Offsite 2025", Avatar: "OF", LastMessage: "Photos are up", Time: "Dec 12", IsGroup: true, IsArchived: true},
	)
	f.SetMessages(1,
		domain.Message{ID: 1, Text: "Morning! Did you see the new designs?", Time: "09:02", UserID: 2},
		domain.Message{ID: 2, Text: "Yes, they look great", Time: "09:05", UserID: f.MeID, IsMine: true,
			Reactions: []domain.Reaction{{Emoji: "👍", UserID: 2}}},
		domain.Message{ID: 3, Text: "See you at the standup", Time: "09:12", UserID: 2},
	)
	f.SetMessages(2,
		domain.Message{ID: 4, Text: "Release branch is cut", Time: "08:30", UserID: 3},
		domain.Message{ID: 5, Text: "wrong channel", Time: "08:31", UserID: 4, IsRemoved: true},
		domain.Message{ID: 6, Text: "Deploy is green", Time: "08:47", UserID: 3,
			Reactions: []domain.Reaction{{Emoji: "🎉", UserID: 2}, {Emoji: "🎉", UserID: f.MeID}}},
	)
	f.SetMessages(3, domain.Message{ID: 7, Text: "Thanks!", Time: "Mon", UserID: 3})
	f.SetTyping(1, "Maria Garcia")
}
