package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"messenger/contract"
	"messenger/domain"
	"messenger/domain/chat"
	"messenger/errors"
	"messenger/observability"
	"net/http"
	"net/url"
	"time"
)

// Ensure *MessengerClient implements the contract.MessengerAPI interface at compile time.
var _ contract.MessengerAPI = (*MessengerClient)(nil)

// MessengerClient talks to the single HTTP endpoint of the chat API.
// Reads are GET requests selected by the "action" query parameter,
// writes are POST requests whose JSON body carries the action tag.
type MessengerClient struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
	metrics *observability.Metrics
}

func NewMessengerClient(baseURL string, timeout time.Duration, log *slog.Logger, metrics *observability.Metrics) (*MessengerClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", baseURL)
	}
	return &MessengerClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log,
		metrics: metrics,
	}, nil
}

type chatsResponse struct {
	Chats []domain.Chat `json:"chats"`
}

type contactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type messagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

type messageResponse struct {
	Message *domain.Message `json:"message"`
}

type typingResponse struct {
	Typing []string `json:"typing"`
}

type successResponse struct {
	Success bool          `json:"success"`
	ChatID  domain.ChatID `json:"chat_id,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (r successResponse) check(action chat.Action) error {
	if r.Success {
		return nil
	}
	if r.Error != "" {
		return fmt.Errorf("%w: %s: %s", errors.ErrRequestRejected, action, r.Error)
	}
	return fmt.Errorf("%w: %s", errors.ErrRequestRejected, action)
}

func (c *MessengerClient) GetChats(ctx context.Context) ([]domain.Chat, error) {
	var resp chatsResponse
	if err := c.get(ctx, chat.QueryChats, nil, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Chats), nil
}

func (c *MessengerClient) GetContacts(ctx context.Context) ([]domain.Contact, error) {
	var resp contactsResponse
	if err := c.get(ctx, chat.QueryContacts, nil, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Contacts), nil
}

func (c *MessengerClient) GetMessages(ctx context.Context, chatID domain.ChatID) ([]domain.Message, error) {
	var resp messagesResponse
	params := url.Values{"chat_id": []string{chatID.String()}}
	if err := c.get(ctx, chat.QueryMessages, params, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Messages), nil
}

func (c *MessengerClient) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (domain.Message, error) {
	var resp messageResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return domain.Message{}, err
	}
	if resp.Message == nil {
		return domain.Message{}, fmt.Errorf("%w: %s: missing message", errors.ErrMalformedResponse, cmd.Action())
	}
	return *resp.Message, nil
}

func (c *MessengerClient) EditMessage(ctx context.Context, cmd chat.EditMessageCommand) error {
	var resp successResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return err
	}
	return resp.check(cmd.Action())
}

func (c *MessengerClient) DeleteMessage(ctx context.Context, cmd chat.DeleteMessageCommand) error {
	var resp successResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return err
	}
	return resp.check(cmd.Action())
}

// AddReaction is fire-and-forget: any 2xx answer counts as delivered.
func (c *MessengerClient) AddReaction(ctx context.Context, cmd chat.AddReactionCommand) error {
	return c.post(ctx, cmd, nil)
}

// SetTyping is fire-and-forget: any 2xx answer counts as delivered.
func (c *MessengerClient) SetTyping(ctx context.Context, cmd chat.SetTypingCommand) error {
	return c.post(ctx, cmd, nil)
}

func (c *MessengerClient) GetTyping(ctx context.Context, cmd chat.GetTypingCommand) ([]string, error) {
	var resp typingResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Typing), nil
}

// CreateGroup returns the id of the new chat when the API reports one, 0 otherwise.
func (c *MessengerClient) CreateGroup(ctx context.Context, cmd chat.CreateGroupCommand) (domain.ChatID, error) {
	var resp successResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return 0, err
	}
	if err := resp.check(cmd.Action()); err != nil {
		return 0, err
	}
	return resp.ChatID, nil
}

func (c *MessengerClient) ArchiveChat(ctx context.Context, cmd chat.ArchiveChatCommand) error {
	var resp successResponse
	if err := c.post(ctx, cmd, &resp); err != nil {
		return err
	}
	return resp.check(cmd.Action())
}

func (c *MessengerClient) get(ctx context.Context, query chat.Query, params url.Values, out any) error {
	u := *c.baseURL
	q := u.Query()
	q.Set("action", string(query))
	for k, values := range params {
		for _, v := range values {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrTransport, query, err)
	}
	return c.do(req, string(query), out)
}

func (c *MessengerClient) post(ctx context.Context, cmd chat.Command, out any) error {
	body, err := envelope(cmd)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrInvalidCommand, cmd.Action(), err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrTransport, cmd.Action(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, string(cmd.Action()), out)
}

// do sends the request and decodes a JSON body into out when out is not nil.
func (c *MessengerClient) do(req *http.Request, action string, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRequest(action, start, err)
		c.log.Debug("API call", "action", action, "method", req.Method, "duration", time.Since(start), "error", err)
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrTransport, action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: reading body: %w", errors.ErrTransport, action, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr successResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s: %d %s", errors.ErrUnexpectedStatus, action, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: %s: %d", errors.ErrUnexpectedStatus, action, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s: empty body", errors.ErrMalformedResponse, action)
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrMalformedResponse, action, err)
	}
	return nil
}

// envelope flattens a command and its action tag into one JSON object.
func envelope(cmd chat.Command) ([]byte, error) {
	raw, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	action, err := json.Marshal(cmd.Action())
	if err != nil {
		return nil, err
	}
	fields["action"] = action
	return json.Marshal(fields)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
