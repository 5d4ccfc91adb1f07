package internal

import (
	"fmt"
	"time"

	"messenger/domain"
	"messenger/moderation"
	"messenger/runtime"
)

type Config struct {
	APIURL               string        `env:"MESSENGER_API_URL,required=true"`
	UserID               int64         `env:"MESSENGER_USER_ID,default=1"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT,default=10s"`
	TypingPollInterval   time.Duration `env:"TYPING_POLL_INTERVAL,default=3s"`
	TypingClearAfter     time.Duration `env:"TYPING_CLEAR_AFTER,default=5s"`
	TypingNotifyInterval time.Duration `env:"TYPING_NOTIFY_INTERVAL,default=0s"`
	EventBufferSize      int           `env:"EVENT_BUFFER_SIZE,default=256"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=1s"`
	// Empty keeps drafts in memory only.
	BadgerFilepath  string `env:"BADGER_FILEPATH"`
	CensoredWords   string `env:"CENSORED_WORDS"`
	CensorCharacter string `env:"CENSOR_CHARACTER,default=*"`
	// Empty disables the /metrics endpoint.
	MetricsAddr string `env:"METRICS_ADDR"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

// Options maps the configuration onto the orchestrator tunables.
func (c Config) Options() (runtime.Options, error) {
	if c.UserID <= 0 {
		return runtime.Options{}, fmt.Errorf("MESSENGER_USER_ID must be positive, got %d", c.UserID)
	}
	if c.TypingClearAfter <= 0 || c.TypingPollInterval <= 0 {
		return runtime.Options{}, fmt.Errorf("typing intervals must be positive")
	}
	return runtime.Options{
		UserID:               domain.UserID(c.UserID),
		TypingPollInterval:   c.TypingPollInterval,
		TypingClearAfter:     c.TypingClearAfter,
		TypingNotifyInterval: c.TypingNotifyInterval,
		EventBufferSize:      c.EventBufferSize,
		SinkTimeout:          c.SinkTimeout,
	}, nil
}

// Moderator builds the display censor. It is nil when no word is configured.
func (c Config) Moderator() (*moderation.Moderator, error) {
	replacement, err := CharacterRune(c.CensorCharacter)
	if err != nil {
		return nil, err
	}
	return moderation.NewModerator(moderation.ParseWords(c.CensoredWords), replacement)
}
