// Package tui is the interactive terminal front end. It renders the views
// of services.IChatService and redraws whenever the store publishes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"messenger/domain"
	"messenger/domain/event"
	"messenger/projection"
	"messenger/services"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 32
	placeholder  = "Message... (Enter to send, /help for commands)"
)

// ResultMsg reports the outcome of an operation run off the event loop.
type ResultMsg struct {
	Err error
	// SyncDraft copies the stored draft into the composer.
	SyncDraft bool
}

type Model struct {
	ctx      context.Context
	svc      services.IChatService
	styles   Styles
	input    textinput.Model
	viewport viewport.Model

	rows    []projection.ChatRow
	thread  []projection.MessageView
	typing  string
	active  *domain.ChatID
	section domain.Section
	cursor  int
	notice  string
	isError bool
	width   int
	height  int
}

func NewModel(ctx context.Context, svc services.IChatService) Model {
	styles := DefaultStyles()
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.Focus()
	return Model{
		ctx:      ctx,
		svc:      svc,
		styles:   styles,
		input:    ti,
		viewport: viewport.New(80, 20),
		section:  domain.SectionChats,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(m.svc.Bootstrap, true))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.Width = max(msg.Width-sidebarWidth-6, 10)
		m.viewport.Height = max(msg.Height-8, 3)
		m.refresh()
		return m, nil

	case EventMsg:
		if n, ok := msg.Event.(event.Notification); ok {
			m.notice, m.isError = fmt.Sprintf("%s failed: %s", n.Operation, n.Message), true
		}
		switchedChat := msg.Event.Type() == event.ChatSelectedType || msg.Event.Type() == event.ChatDeselectedType
		if switchedChat && !m.composingCommand() {
			m.input.SetValue(m.svc.Snapshot().Draft)
		}
		m.refresh()
		return m, nil

	case ResultMsg:
		if msg.Err != nil {
			m.notice, m.isError = msg.Err.Error(), true
		}
		if msg.SyncDraft {
			m.input.SetValue(m.svc.Snapshot().Draft)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.svc.DeselectChat()
		m.input.SetValue("")
		m.refresh()
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyTab:
		next := domain.SectionArchive
		if m.section == domain.SectionArchive {
			next = domain.SectionChats
		}
		_ = m.svc.SetSection(next, "")
		m.cursor = 0
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before && !m.composingCommand() {
		m.svc.UpdateDraft(value)
	}
	return m, cmd
}

// submit opens the highlighted chat when the composer is empty, otherwise
// sends the draft or runs the slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		if m.cursor >= len(m.rows) {
			return m, nil
		}
		chatID := m.rows[m.cursor].ID
		return m, m.run(func(ctx context.Context) error { return m.svc.SelectChat(ctx, chatID) }, true)
	}
	if line == "/help" {
		m.notice, m.isError = usage, false
		m.input.Reset()
		return m, nil
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		m.notice, m.isError = err.Error(), true
		return m, nil
	}
	m.notice = ""
	if cmd.Kind == KindSend {
		return m, m.run(func(ctx context.Context) error { return Execute(ctx, m.svc, cmd, m.active) }, true)
	}
	m.input.Reset()
	active := m.active
	return m, m.run(func(ctx context.Context) error { return Execute(ctx, m.svc, cmd, active) }, false)
}

func (m Model) run(fn func(ctx context.Context) error, syncDraft bool) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return ResultMsg{Err: fn(ctx), SyncDraft: syncDraft}
	}
}

func (m Model) composingCommand() bool {
	return strings.HasPrefix(m.input.Value(), "/")
}

func (m *Model) refresh() {
	m.rows = m.svc.ChatRows()
	m.thread = m.svc.Thread()
	m.typing = m.svc.Typing()
	state := m.svc.Snapshot()
	m.active = state.ActiveChat
	m.section = state.Section
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.viewport.SetContent(m.renderThread())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Sidebar.Width(sidebarWidth).Render(m.renderSidebar()),
		m.styles.Thread.Render(m.viewport.View()),
	)
	var footer strings.Builder
	footer.WriteString(m.styles.Typing.Render(m.typing))
	footer.WriteString("\n")
	if m.notice != "" {
		style := m.styles.Notice
		if m.isError {
			style = m.styles.Error
		}
		footer.WriteString(style.Render(m.notice))
	}
	footer.WriteString("\n")
	footer.WriteString(m.styles.Composer.Render(m.input.View()))
	return lipgloss.JoinVertical(lipgloss.Left, body, footer.String())
}

func (m Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(strings.ToUpper(string(m.section))))
	sb.WriteString("\n")
	if len(m.rows) == 0 {
		sb.WriteString(m.styles.Meta.Render("No chats"))
		return sb.String()
	}
	for i, row := range m.rows {
		line := row.Name
		if row.Unread != "" {
			line += " " + m.styles.Unread.Render("("+row.Unread+")")
		}
		style := m.styles.Row
		if row.Active {
			style = m.styles.Active
		}
		if i == m.cursor {
			style = style.Inherit(m.styles.Cursor)
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
		if row.LastMessage != "" {
			sb.WriteString(m.styles.Meta.Render("  " + truncate(row.LastMessage, sidebarWidth-4)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) renderThread() string {
	if m.active == nil {
		return m.styles.Meta.Render("Select a chat with ↑/↓ and Enter")
	}
	if len(m.thread) == 0 {
		return m.styles.Meta.Render("No messages yet")
	}
	var sb strings.Builder
	for _, msg := range m.thread {
		sb.WriteString(m.styles.Meta.Render(fmt.Sprintf("#%d %s", msg.ID, msg.Time)))
		if msg.EditedLabel != "" {
			sb.WriteString(m.styles.Meta.Render(" · " + msg.EditedLabel))
		}
		sb.WriteString("\n")
		style := m.styles.Theirs
		switch {
		case msg.Removed:
			style = m.styles.Removed
		case msg.Mine:
			style = m.styles.Mine
		}
		sb.WriteString(style.Render(msg.Text))
		sb.WriteString("\n")
		if len(msg.Reactions) > 0 {
			labels := make([]string, 0, len(msg.Reactions))
			for _, r := range msg.Reactions {
				labels = append(labels, r.String())
			}
			sb.WriteString(m.styles.Meta.Render(strings.Join(labels, "  ")))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
