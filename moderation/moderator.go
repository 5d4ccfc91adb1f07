// Package moderation masks configured words in displayed message text.
// It only changes what is rendered, never what is sent or cached.
package moderation

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// folded is the searchable form of a text plus, for each folded rune,
// its position in the original runes.
type folded struct {
	runes []rune
	pos   []int
}

// NewModerator returns nil when words holds nothing usable; a nil *Moderator
// leaves text untouched.
func NewModerator(words []string, replacement rune) (*Moderator, error) {
	patterns := lo.FilterMap(words, func(w string, _ int) ([]rune, bool) {
		f := fold(strings.TrimSpace(w))
		return f.runes, len(f.runes) > 0
	})
	if len(patterns) == 0 {
		return nil, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, replacement: replacement}, nil
}

// ParseWords splits a comma separated list.
func ParseWords(list string) []string {
	return lo.Compact(lo.Map(strings.Split(list, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	}))
}

// Censor replaces every rune of a matched word, including the separators a
// writer slipped inside it, and keeps everything else.
func (m *Moderator) Censor(text string) string {
	if m == nil || text == "" {
		return text
	}
	f := fold(text)
	if len(f.runes) == 0 {
		return text
	}
	hits := m.matcher.MultiPatternSearch(f.runes, false)
	if len(hits) == 0 {
		return text
	}
	out := []rune(text)
	for _, hit := range hits {
		end := hit.Pos + len(hit.Word)
		if hit.Pos < 0 || end > len(f.pos) {
			continue
		}
		for i := f.pos[hit.Pos]; i <= f.pos[end-1]; i++ {
			out[i] = m.replacement
		}
	}
	return string(out)
}

func fold(s string) folded {
	src := []rune(s)
	f := folded{runes: make([]rune, 0, len(src)), pos: make([]int, 0, len(src))}
	for i, r := range src {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		f.runes = append(f.runes, unicode.ToLower(r))
		f.pos = append(f.pos, i)
	}
	return f
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
