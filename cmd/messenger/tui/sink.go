package tui

import (
	"context"

	"messenger/contract"
	"messenger/domain/event"

	tea "github.com/charmbracelet/bubbletea"
)

// EventMsg carries a store event into the bubbletea loop.
type EventMsg struct {
	Event event.DomainEvent
}

var _ contract.EventSink = (*ProgramSink)(nil)

// ProgramSink forwards store events to a running program.
type ProgramSink struct {
	send func(tea.Msg)
}

func NewProgramSink(send func(tea.Msg)) *ProgramSink {
	return &ProgramSink{send: send}
}

func (s *ProgramSink) Consume(ctx context.Context, e event.DomainEvent) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.send(EventMsg{Event: e})
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
