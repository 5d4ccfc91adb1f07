//go:generate go run go.uber.org/mock/mockgen -source=draft.go -destination=../mocks/mock_draft_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"messenger/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	draftPrefix   = "draft:"
	activeChatKey = "session:active_chat"
)

// IDraftRepository keeps unsent drafts and the last opened chat between runs.
type IDraftRepository interface {
	SaveDraft(chatID domain.ChatID, text string) error
	GetDraft(chatID domain.ChatID) (string, error)
	DeleteDraft(chatID domain.ChatID) error
	SaveActiveChat(chatID domain.ChatID) error
	GetActiveChat() (*domain.ChatID, error)
}

type DraftRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDraftRepository(db *badger.DB, log *slog.Logger) DraftRepository {
	return DraftRepository{db: db, log: log}
}

// OpenDraftDB opens the badger store at path, or an in-memory one when path is empty.
func OpenDraftDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening draft store: %w", err)
	}
	return db, nil
}

// draftKey is formatted as "draft:{chat_id:019d}" so keys sort by chat id.
func draftKey(chatID domain.ChatID) []byte {
	return []byte(fmt.Sprintf("%s%019d", draftPrefix, chatID))
}

// SaveDraft stores the draft of a chat. An empty draft deletes the entry.
func (r DraftRepository) SaveDraft(chatID domain.ChatID, text string) error {
	if text == "" {
		return r.DeleteDraft(chatID)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(draftKey(chatID), []byte(text))
	})
}

// GetDraft returns an empty string when the chat has no stored draft.
func (r DraftRepository) GetDraft(chatID domain.ChatID) (string, error) {
	value, err := r.get(draftKey(chatID))
	if err != nil || value == nil {
		return "", err
	}
	return string(value), nil
}

func (r DraftRepository) DeleteDraft(chatID domain.ChatID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(draftKey(chatID))
	})
}

func (r DraftRepository) SaveActiveChat(chatID domain.ChatID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(activeChatKey), []byte(chatID.String()))
	})
}

// GetActiveChat returns nil when no chat was ever opened.
func (r DraftRepository) GetActiveChat() (*domain.ChatID, error) {
	value, err := r.get([]byte(activeChatKey))
	if err != nil || value == nil {
		return nil, err
	}
	id, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		r.log.Warn("Ignoring corrupted active chat entry", "value", string(value))
		return nil, nil
	}
	return lo.ToPtr(domain.ChatID(id)), nil
}

// Draft is one stored draft, as listed by ListDrafts.
type Draft struct {
	ChatID domain.ChatID
	Text   string
}

// ListDrafts returns every stored draft ordered by chat id.
// Entries whose key doesn't hold a chat id are skipped.
func (r DraftRepository) ListDrafts() ([]Draft, error) {
	var drafts []Draft
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(draftPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			id, err := strconv.ParseInt(strings.TrimPrefix(key, draftPrefix), 10, 64)
			if err != nil {
				r.log.Warn("Skipping corrupted draft key", "key", key)
				continue
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			drafts = append(drafts, Draft{ChatID: domain.ChatID(id), Text: string(value)})
		}
		return nil
	})
	return drafts, err
}

func (r DraftRepository) get(key []byte) ([]byte, error) {
	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return value, err
}
