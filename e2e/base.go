// Package e2e drives the client against a live messenger API.
// Every suite skips unless MESSENGER_API_URL is set.
package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"messenger/domain"
	"messenger/infrastructure/http/client"
	"messenger/repositories"
	"messenger/runtime"
	"messenger/runtime/workers"
	"messenger/services"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseAPISuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseAPISuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.APIURL == "" {
		s.T().Skip("MESSENGER_API_URL is not set")
	}
}

func (s *BaseAPISuite) header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// WithClient provides the raw API client within a contextual test step
func (s *BaseAPISuite) WithClient(name string, fn func(ctx context.Context, c *client.MessengerClient)) {
	s.header(name)
	c, err := client.NewMessengerClient(s.Config.APIURL, 10*time.Second, logs.GetLoggerFromLevel(slog.LevelDebug), nil)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	fn(ctx, c)
}

// WithService provides the full client stack, backed by an in-memory draft store
func (s *BaseAPISuite) WithService(name string, fn func(ctx context.Context, svc *services.ChatService)) {
	s.header(name)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	api, err := client.NewMessengerClient(s.Config.APIURL, 10*time.Second, log, nil)
	s.Require().NoError(err)
	db, err := repositories.OpenDraftDB("")
	s.Require().NoError(err)
	defer db.Close()

	opts := runtime.DefaultOptions()
	opts.UserID = domain.UserID(s.Config.UserID)
	o := runtime.NewOrchestrator(log, api, repositories.NewDraftRepository(db, log), nil,
		workers.NewSupervisor(log), runtime.NewRegistry(), opts)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	o.Start(ctx)
	defer o.Stop()

	fn(ctx, services.NewChatService(o, nil, opts.UserID))
}
