package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIURL string `envconfig:"MESSENGER_API_URL"`
	UserID int64  `envconfig:"MESSENGER_USER_ID" default:"1"`
	// E2E_CHAT_ID is the chat the scenarios write into
	ChatID int64 `envconfig:"E2E_CHAT_ID" default:"1"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
