package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"messenger/domain"
	"messenger/domain/event"
	"messenger/errors"
	"messenger/internal/apitest"
	"messenger/repositories"

	"github.com/stretchr/testify/require"
)

func newFakeEnv(t *testing.T) *apitest.FakeAPI {
	t.Helper()
	api := apitest.NewFakeAPI()
	t.Cleanup(api.Close)
	api.SetChats(
		domain.Chat{ID: 1, Name: "Maria", LastMessage: "Hi", Time: "09:12", Unread: 2},
		domain.Chat{ID: 2, Name: "Dev team", IsGroup: true},
		domain.Chat{ID: 3, Name: "Old project", IsArchived: true},
	)
	api.SetContacts(domain.Contact{ID: 2, Name: "Maria", Status: "online"})
	api.SetMessages(1, domain.Message{ID: 10, Text: "Hi", UserID: 2, Time: "09:12"})
	t.Setenv("MESSENGER_API_URL", api.URL())
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("TYPING_POLL_INTERVAL", "1h")
	t.Setenv("BADGER_FILEPATH", "")
	return api
}

func TestRun_Chats_Lists_Active_Section(t *testing.T) {
	req := require.New(t)
	newFakeEnv(t)
	var out bytes.Buffer

	code, err := run([]string{"chats"}, &out)

	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "Maria")
	req.Contains(out.String(), "Dev team")
	req.NotContains(out.String(), "Old project")
}

func TestRun_Chats_Archive_Section(t *testing.T) {
	req := require.New(t)
	newFakeEnv(t)
	var out bytes.Buffer

	code, err := run([]string{"chats", "--section", "archive"}, &out)

	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "Old project")
	req.NotContains(out.String(), "Dev team")
}

func TestRun_Send_Then_Read_Thread(t *testing.T) {
	req := require.New(t)
	api := newFakeEnv(t)
	var out bytes.Buffer

	// Given a message sent from the command line
	code, err := run([]string{"send", "1", "Meeting", "at", "15:00"}, &out)
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "sent message")
	req.Equal(1, api.Count("send_message"))

	// When the thread is printed
	out.Reset()
	code, err = run([]string{"messages", "1"}, &out)

	// Then both messages are listed
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "Hi")
	req.Contains(out.String(), "Meeting at 15:00")
}

func TestRun_React_Waits_For_Confirmation(t *testing.T) {
	req := require.New(t)
	api := newFakeEnv(t)
	var out bytes.Buffer

	code, err := run([]string{"react", "1", "10", "👍"}, &out)

	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "reacted 👍")
	req.Equal(1, api.Count("add_reaction"))
}

func TestRun_Group_Validation_Fails_Without_Network(t *testing.T) {
	req := require.New(t)
	api := newFakeEnv(t)
	var out bytes.Buffer

	code, err := run([]string{"group", "--name", "Team", "--member", "2", "--admin", "3"}, &out)

	req.ErrorIs(err, errors.ErrAdminNotMember)
	req.Equal(exitRuntime, code)
	req.Zero(api.Count("create_group"))
}

func TestRun_Invalid_Chat_ID(t *testing.T) {
	newFakeEnv(t)
	code, err := run([]string{"archive", "abc"}, &bytes.Buffer{})

	require.ErrorIs(t, err, errors.ErrInvalidCommand)
	require.Equal(t, exitRuntime, code)
}

func TestRun_Missing_Config(t *testing.T) {
	t.Setenv("MESSENGER_API_URL", "")
	require.NoError(t, os.Unsetenv("MESSENGER_API_URL"))
	code, err := run([]string{"chats"}, &bytes.Buffer{})

	require.ErrorIs(t, err, errConfig)
	require.Equal(t, exitConfig, code)
}

func TestRun_Drafts_Lists_Local_Store(t *testing.T) {
	req := require.New(t)
	newFakeEnv(t)
	dir := t.TempDir()
	t.Setenv("BADGER_FILEPATH", dir)

	// Given a draft left in chat 2 and chat 1 opened last
	db, err := repositories.OpenDraftDB(dir)
	req.NoError(err)
	drafts := repositories.NewDraftRepository(db, slog.Default())
	req.NoError(drafts.SaveDraft(2, "see you at"))
	req.NoError(drafts.SaveActiveChat(2))
	req.NoError(db.Close())

	// When drafts are listed
	var out bytes.Buffer
	code, err := run([]string{"drafts"}, &out)

	// Then the draft shows up with its chat marked active
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), "see you at")
	req.Contains(out.String(), "*")
}

func TestConsoleSink_Prints_What_Matters(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	sink := newConsoleSink(&out, false)
	ctx := context.Background()

	req.NoError(sink.Consume(ctx, event.TypingChanged{ChatID: 1, Names: []string{"Maria"}}))
	req.NoError(sink.Consume(ctx, event.NewNotification("send_message", errors.ErrTransport, time.Now())))
	req.NoError(sink.Consume(ctx, event.ChatsLoaded{Count: 3}))

	req.Contains(out.String(), "Maria is typing")
	req.Contains(out.String(), "send_message: transport failure")
	req.NotContains(out.String(), "chats_loaded")

	out.Reset()
	req.NoError(newConsoleSink(&out, true).Consume(ctx, event.ChatsLoaded{Count: 3}))
	req.Contains(out.String(), "chats_loaded")
}
