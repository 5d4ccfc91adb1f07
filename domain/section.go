package domain

import (
	"messenger/errors"
	"strings"

	"github.com/samber/lo"
)

// Section is the sidebar entry currently displayed.
type Section string

const (
	SectionChats    Section = "chats"
	SectionArchive  Section = "archive"
	SectionSearch   Section = "search"
	SectionContacts Section = "contacts"
)

var sections = []Section{SectionChats, SectionArchive, SectionSearch, SectionContacts}

func ParseSection(s string) (Section, error) {
	section := Section(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(sections, section) {
		return "", errors.ErrUnknownSection
	}
	return section, nil
}

// FilterChats returns the chats visible in a section.
// Archive shows archived chats only, search matches names case-insensitively,
// every other section shows the non-archived chats.
func FilterChats(chats []Chat, section Section, query string) []Chat {
	query = strings.ToLower(strings.TrimSpace(query))
	return lo.Filter(chats, func(c Chat, _ int) bool {
		switch section {
		case SectionArchive:
			return c.IsArchived
		case SectionSearch:
			return strings.Contains(strings.ToLower(c.Name), query)
		default:
			return !c.IsArchived
		}
	})
}
