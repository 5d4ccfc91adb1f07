package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"messenger/contract"
	"messenger/domain"
	"messenger/domain/event"
	"messenger/projection"
	"messenger/repositories"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderChats(w io.Writer, rows []projection.ChatRow) {
	table := newTable(w, []string{"ID", "Name", "Last message", "Time", "Unread", "Kind"})
	for _, row := range rows {
		kind := "direct"
		if row.IsGroup {
			kind = "group"
		}
		if row.IsArchived {
			kind += ", archived"
		}
		table.Append([]string{row.ID.String(), row.Name, row.LastMessage, row.Time, row.Unread, kind})
	}
	table.Render()
}

func renderContacts(w io.Writer, contacts []domain.Contact) {
	table := newTable(w, []string{"ID", "Name", "Status"})
	for _, c := range contacts {
		table.Append([]string{c.ID.String(), c.Name, c.Status})
	}
	table.Render()
}

func renderThread(w io.Writer, views []projection.MessageView) {
	table := newTable(w, []string{"ID", "Time", "From", "Text", "Reactions"})
	for _, v := range views {
		from := "them"
		if v.Mine {
			from = "me"
		}
		text := v.Text
		if v.EditedLabel != "" {
			text += " (" + v.EditedLabel + ")"
		}
		reactions := strings.Join(lo.Map(v.Reactions, func(r projection.ReactionView, _ int) string {
			return r.String()
		}), " ")
		table.Append([]string{v.ID.String(), v.Time, from, text, reactions})
	}
	table.Render()
}

func renderDrafts(w io.Writer, drafts []repositories.Draft, active *domain.ChatID) {
	table := newTable(w, []string{"Chat", "Active", "Draft"})
	for _, d := range drafts {
		mark := ""
		if active != nil && *active == d.ChatID {
			mark = "*"
		}
		table.Append([]string{d.ChatID.String(), mark, d.Text})
	}
	table.Render()
}

// sinkFunc adapts a function to contract.EventSink.
type sinkFunc func(ctx context.Context, e event.DomainEvent) error

func (f sinkFunc) Consume(ctx context.Context, e event.DomainEvent) error {
	return f(ctx, e)
}

var _ contract.EventSink = (*consoleSink)(nil)

// consoleSink prints typing changes and notifications as they happen.
type consoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

func newConsoleSink(out io.Writer, verbose bool) *consoleSink {
	return &consoleSink{out: out, verbose: verbose}
}

func (s *consoleSink) Consume(_ context.Context, e event.DomainEvent) error {
	line := s.format(e)
	if line == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.out, line)
	return err
}

func (s *consoleSink) format(e event.DomainEvent) string {
	switch evt := e.(type) {
	case event.Notification:
		return color.New(color.FgRed).Sprintf("✗ %s: %s", evt.Operation, evt.Message)
	case event.TypingChanged:
		if len(evt.Names) == 0 {
			return color.New(color.FgGray).Sprint("nobody is typing")
		}
		return color.New(color.FgGray).Sprint(projection.TypingLabel(evt.Names))
	case event.MessageSent:
		return color.New(color.FgGreen).Sprintf("→ %s", evt.Message.Text)
	default:
		if s.verbose {
			return color.New(color.FgCyan).Sprintf("· %s", e.Type())
		}
		return ""
	}
}
