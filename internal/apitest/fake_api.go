// Package apitest serves an in-memory stand-in for the chat API.
// It exists for tests and local runs of the client only.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"messenger/domain"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

// Request is what the fake saw for one call.
type Request struct {
	Method string
	Action string
	Body   map[string]any
}

type FakeAPI struct {
	mu         sync.Mutex
	Server     *httptest.Server
	MeID       domain.UserID
	chats      []domain.Chat
	contacts   []domain.Contact
	messages   map[domain.ChatID][]domain.Message
	typing     map[domain.ChatID][]string
	requests   []Request
	failures   map[string]int
	gates      map[string]chan struct{}
	nextMsgID  domain.MessageID
	nextChatID domain.ChatID
}

// New returns a fake that isn't listening yet; serve Router() to expose it.
func New() *FakeAPI {
	return &FakeAPI{
		MeID:       1,
		messages:   make(map[domain.ChatID][]domain.Message),
		typing:     make(map[domain.ChatID][]string),
		failures:   make(map[string]int),
		gates:      make(map[string]chan struct{}),
		nextMsgID:  1000,
		nextChatID: 100,
	}
}

// NewFakeAPI returns a fake served on a local test server.
func NewFakeAPI() *FakeAPI {
	f := New()
	f.Server = httptest.NewServer(f.Router())
	return f
}

func (f *FakeAPI) URL() string { return f.Server.URL }

func (f *FakeAPI) Close() {
	f.mu.Lock()
	for key, gate := range f.gates {
		close(gate)
		delete(f.gates, key)
	}
	f.mu.Unlock()
	if f.Server != nil {
		f.Server.Close()
	}
}

func (f *FakeAPI) Router() http.Handler {
	r := mux.NewRouter()
	r.Methods(http.MethodGet).Queries("action", "chats").HandlerFunc(f.getChats)
	r.Methods(http.MethodGet).Queries("action", "contacts").HandlerFunc(f.getContacts)
	r.Methods(http.MethodGet).Queries("action", "messages", "chat_id", "{chat_id:[0-9]+}").HandlerFunc(f.getMessages)
	r.Methods(http.MethodPost).HandlerFunc(f.post)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request"})
	})
	return r
}

func (f *FakeAPI) SetChats(chats ...domain.Chat) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = chats
}

func (f *FakeAPI) SetContacts(contacts ...domain.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = contacts
}

func (f *FakeAPI) SetMessages(chatID domain.ChatID, messages ...domain.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[chatID] = messages
}

func (f *FakeAPI) SetTyping(chatID domain.ChatID, names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing[chatID] = names
}

// FailNext makes the next call of action answer with status.
func (f *FakeAPI) FailNext(action string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[action] = status
}

// Hold blocks calls of action until the returned release func is called.
func (f *FakeAPI) Hold(action string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[action] = gate
	return sync.OnceFunc(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gates[action] == gate {
			delete(f.gates, action)
			close(gate)
		}
	})
}

func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many calls of action were received.
func (f *FakeAPI) Count(action string) int {
	return lo.CountBy(f.Requests(), func(r Request) bool { return r.Action == action })
}

// intercept records the call, waits on a gate and applies an injected failure.
func (f *FakeAPI) intercept(w http.ResponseWriter, r *http.Request, action string, body map[string]any) bool {
	f.mu.Lock()
	f.requests = append(f.requests, Request{Method: r.Method, Action: action, Body: body})
	gate := f.gates[action]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return false
		case <-time.After(10 * time.Second):
		}
	}

	f.mu.Lock()
	status, fail := f.failures[action]
	delete(f.failures, action)
	f.mu.Unlock()
	if fail {
		writeJSON(w, status, map[string]any{"error": "injected failure"})
		return false
	}
	return true
}

func (f *FakeAPI) getChats(w http.ResponseWriter, r *http.Request) {
	if !f.intercept(w, r, "chats", nil) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"chats": f.chats})
}

func (f *FakeAPI) getContacts(w http.ResponseWriter, r *http.Request) {
	if !f.intercept(w, r, "contacts", nil) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"contacts": f.contacts})
}

func (f *FakeAPI) getMessages(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["chat_id"], 10, 64)
	if !f.intercept(w, r, "messages", map[string]any{"chat_id": float64(id)}) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"messages": f.messages[domain.ChatID(id)]})
}

func (f *FakeAPI) post(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	action, _ := body["action"].(string)
	if !f.intercept(w, r, action, body) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch action {
	case "send_message":
		chatID := domain.ChatID(number(body["chat_id"]))
		f.nextMsgID++
		msg := domain.Message{
			ID:     f.nextMsgID,
			Text:   fmt.Sprint(body["text"]),
			Time:   time.Now().Format("15:04"),
			UserID: domain.UserID(number(body["user_id"])),
		}
		msg.IsMine = msg.UserID == f.MeID
		f.messages[chatID] = append(f.messages[chatID], msg)
		f.touchChat(chatID, msg)
		writeJSON(w, http.StatusOK, map[string]any{"message": msg})
	case "edit_message":
		ok := f.updateMessage(domain.MessageID(number(body["message_id"])), func(m *domain.Message) {
			m.Text = fmt.Sprint(body["text"])
		})
		writeJSON(w, http.StatusOK, map[string]any{"success": ok})
	case "delete_message":
		ok := f.updateMessage(domain.MessageID(number(body["message_id"])), func(m *domain.Message) {
			m.IsRemoved = true
		})
		writeJSON(w, http.StatusOK, map[string]any{"success": ok})
	case "add_reaction":
		f.updateMessage(domain.MessageID(number(body["message_id"])), func(m *domain.Message) {
			*m, _, _ = m.AddReaction(domain.Reaction{
				Emoji:  fmt.Sprint(body["emoji"]),
				UserID: domain.UserID(number(body["user_id"])),
			})
		})
		w.WriteHeader(http.StatusOK)
	case "set_typing":
		w.WriteHeader(http.StatusOK)
	case "get_typing":
		writeJSON(w, http.StatusOK, map[string]any{"typing": f.typing[domain.ChatID(number(body["chat_id"]))]})
	case "create_group":
		f.nextChatID++
		name := fmt.Sprint(body["name"])
		f.chats = append(f.chats, domain.Chat{ID: f.nextChatID, Name: name, IsGroup: true, Avatar: avatar(name)})
		writeJSON(w, http.StatusOK, map[string]any{"chat_id": f.nextChatID, "success": true})
	case "archive_chat":
		chatID := domain.ChatID(number(body["chat_id"]))
		archived, _ := body["is_archived"].(bool)
		for i := range f.chats {
			if f.chats[i].ID == chatID {
				f.chats[i].IsArchived = archived
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request"})
	}
}

func (f *FakeAPI) updateMessage(id domain.MessageID, update func(m *domain.Message)) bool {
	for chatID, messages := range f.messages {
		for i := range messages {
			if messages[i].ID == id {
				update(&f.messages[chatID][i])
				return true
			}
		}
	}
	return false
}

func (f *FakeAPI) touchChat(chatID domain.ChatID, msg domain.Message) {
	for i := range f.chats {
		if f.chats[i].ID == chatID {
			f.chats[i].LastMessage = msg.Text
			f.chats[i].Time = msg.Time
		}
	}
}

func avatar(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func number(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
