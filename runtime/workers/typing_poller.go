package workers

import (
	"context"
	"log/slog"
	"time"

	"messenger/contract"
	"messenger/domain"
)

// TypingPollWorker asks the source who is typing in one chat at a fixed
// interval until its context is canceled.
type TypingPollWorker struct {
	log      *slog.Logger
	source   contract.TypingSource
	chatID   domain.ChatID
	interval time.Duration
}

func NewTypingPollWorker(log *slog.Logger, source contract.TypingSource, chatID domain.ChatID, interval time.Duration) *TypingPollWorker {
	return &TypingPollWorker{log: log, source: source, chatID: chatID, interval: interval}
}

func (w *TypingPollWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// Failures are reported by the source; polling goes on.
			if _, err := w.source.PollTyping(ctx, w.chatID); err != nil {
				w.log.Debug("Typing poll failed", "chat_id", w.chatID, "error", err)
			}
		}
	}
}
