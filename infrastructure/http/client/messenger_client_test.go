package client

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"messenger/domain"
	"messenger/domain/chat"
	"messenger/errors"
	"messenger/internal/apitest"
	"messenger/observability"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *MessengerClient {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c, err := NewMessengerClient(url, 2*time.Second, log, observability.NewMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	return c
}

func TestMessengerClient_Reads(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	api.SetChats(domain.Chat{ID: 1, Name: "Dev team", Unread: 3, IsGroup: true})
	api.SetContacts(domain.Contact{ID: 2, Name: "Maria", Status: "online"})
	api.SetMessages(1, domain.Message{ID: 10, Text: "Hi", UserID: 2})
	c := newTestClient(t, api.URL())
	ctx := context.Background()

	chats, err := c.GetChats(ctx)
	req.NoError(err)
	req.Len(chats, 1)
	req.Equal("Dev team", chats[0].Name)
	req.True(chats[0].IsGroup)

	contacts, err := c.GetContacts(ctx)
	req.NoError(err)
	req.Equal([]domain.Contact{{ID: 2, Name: "Maria", Status: "online"}}, contacts)

	messages, err := c.GetMessages(ctx, 1)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(domain.MessageID(10), messages[0].ID)
	req.Equal(float64(1), api.Requests()[2].Body["chat_id"])
}

func TestMessengerClient_Missing_Collections_Are_Empty(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	c := newTestClient(t, api.URL())

	chats, err := c.GetChats(context.Background())
	req.NoError(err)
	req.NotNil(chats)
	req.Empty(chats)

	typing, err := c.GetTyping(context.Background(), chat.GetTypingCommand{ChatID: 4})
	req.NoError(err)
	req.NotNil(typing)
	req.Empty(typing)
}

func TestMessengerClient_Post_Body_Carries_Action(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	c := newTestClient(t, api.URL())

	msg, err := c.SendMessage(context.Background(), chat.SendMessageCommand{ChatID: 3, Text: "Meeting at 15:00", UserID: 1})
	req.NoError(err)
	req.Equal("Meeting at 15:00", msg.Text)
	req.True(msg.IsMine)

	requests := api.Requests()
	req.Len(requests, 1)
	req.Equal(http.MethodPost, requests[0].Method)
	req.Equal("send_message", requests[0].Body["action"])
	req.Equal(float64(3), requests[0].Body["chat_id"])
	req.Equal(float64(1), requests[0].Body["user_id"])
}

func TestMessengerClient_CreateGroup_Returns_ChatID(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	c := newTestClient(t, api.URL())

	id, err := c.CreateGroup(context.Background(), chat.CreateGroupCommand{
		Name: "Team", MemberIDs: []domain.UserID{2, 3}, AdminIDs: []domain.UserID{2},
	})
	req.NoError(err)
	req.NotZero(id)

	body := api.Requests()[0].Body
	req.Equal([]any{float64(2), float64(3)}, body["member_ids"])
	req.Equal([]any{float64(2)}, body["admin_ids"])
}

func TestMessengerClient_Unexpected_Status(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	api.FailNext("chats", http.StatusInternalServerError)
	c := newTestClient(t, api.URL())

	_, err := c.GetChats(context.Background())
	req.ErrorIs(err, errors.ErrUnexpectedStatus)
	req.Contains(err.Error(), "injected failure")
	req.Equal(errors.CategoryTransport, errors.CategoryOf(err))
}

func TestMessengerClient_Success_False_Is_Rejected(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	c := newTestClient(t, api.URL())

	// Given the message doesn't exist server side
	err := c.EditMessage(context.Background(), chat.EditMessageCommand{MessageID: 42, Text: "x"})

	req.ErrorIs(err, errors.ErrRequestRejected)
	req.Equal(errors.CategoryResponse, errors.CategoryOf(err))
}

func TestMessengerClient_Malformed_Responses(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(c *MessengerClient) error
	}{
		{
			name: "not json",
			body: "<html>oops</html>",
			call: func(c *MessengerClient) error {
				_, err := c.GetChats(context.Background())
				return err
			},
		},
		{
			name: "wrong shape",
			body: `{"chats": "nope"}`,
			call: func(c *MessengerClient) error {
				_, err := c.GetChats(context.Background())
				return err
			},
		},
		{
			name: "send without message",
			body: `{"success": true}`,
			call: func(c *MessengerClient) error {
				_, err := c.SendMessage(context.Background(), chat.SendMessageCommand{ChatID: 1, Text: "hi", UserID: 1})
				return err
			},
		},
		{
			name: "empty body",
			body: "",
			call: func(c *MessengerClient) error {
				return c.DeleteMessage(context.Background(), chat.DeleteMessageCommand{MessageID: 1})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := tt.call(newTestClient(t, srv.URL))
			require.ErrorIs(t, err, errors.ErrMalformedResponse)
		})
	}
}

func TestMessengerClient_Unparseable_EditedAt_Keeps_Thread(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"messages": [
			{"id": 1, "text": "hi", "user_id": 2, "edited_at": "yesterday"},
			{"id": 2, "text": "ok", "user_id": 1, "edited_at": "2026-10-18 09:00:00"}
		]}`))
	}))
	defer srv.Close()

	// When a message carries an edit time in an unknown format
	messages, err := newTestClient(t, srv.URL).GetMessages(context.Background(), 1)

	// Then the thread still loads and only that stamp is dropped
	req.NoError(err)
	req.Len(messages, 2)
	req.Nil(messages[0].EditedAt)
	req.NotNil(messages[1].EditedAt)
	req.True(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC).Equal(*messages[1].EditedAt))
}

func TestMessengerClient_FireAndForget_Ignores_Body(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	c := newTestClient(t, api.URL())

	req.NoError(c.SetTyping(context.Background(), chat.SetTypingCommand{ChatID: 1, UserID: 1}))
	req.NoError(c.AddReaction(context.Background(), chat.AddReactionCommand{MessageID: 5, Emoji: "👍", UserID: 1}))
	req.Equal(1, api.Count("set_typing"))
	req.Equal(1, api.Count("add_reaction"))
}

func TestMessengerClient_Transport_Failure_Keeps_Context_Error(t *testing.T) {
	req := require.New(t)
	api := apitest.NewFakeAPI()
	defer api.Close()
	release := api.Hold("chats")
	defer release()
	c := newTestClient(t, api.URL())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.GetChats(ctx)

	req.ErrorIs(err, errors.ErrTransport)
	req.True(goerrors.Is(err, context.DeadlineExceeded))
}

func TestNewMessengerClient_Rejects_Relative_URL(t *testing.T) {
	_, err := NewMessengerClient("/api", time.Second, slog.Default(), nil)
	require.Error(t, err)
}

func TestEnvelope_Flattens_Command(t *testing.T) {
	req := require.New(t)
	body, err := envelope(chat.ArchiveChatCommand{ChatID: 5, IsArchived: true})
	req.NoError(err)
	req.JSONEq(`{"action":"archive_chat","chat_id":5,"is_archived":true}`, string(body))
}
