package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"messenger/domain"
	"messenger/errors"
	"messenger/services"

	"github.com/samber/lo"
)

type Kind int

const (
	KindSend Kind = iota
	KindEdit
	KindDelete
	KindReact
	KindGroup
	KindArchive
	KindSection
	KindRefresh
)

// Command is one line typed in the composer. Lines that don't start
// with a slash are sent as the draft.
type Command struct {
	Kind      Kind
	MessageID domain.MessageID
	ChatID    domain.ChatID
	Text      string
	Emoji     string
	Members   []domain.UserID
	Admins    []domain.UserID
	Archived  bool
	Section   domain.Section
}

const usage = "/edit <id> <text> · /delete <id> · /react <id> <emoji> · " +
	"/group <ids> [admins=<ids>] <name> · /archive [chat] · /unarchive [chat] · " +
	"/section <chats|archive|search|contacts> [query] · /refresh"

// ParseCommand reads a composer line.
func ParseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: KindSend, Text: line}, nil
	}
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	switch name {
	case "/edit":
		if len(args) < 2 {
			return Command{}, invalid(name)
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindEdit, MessageID: domain.MessageID(id), Text: strings.Join(args[1:], " ")}, nil
	case "/delete":
		if len(args) != 1 {
			return Command{}, invalid(name)
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindDelete, MessageID: domain.MessageID(id)}, nil
	case "/react":
		if len(args) != 2 {
			return Command{}, invalid(name)
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindReact, MessageID: domain.MessageID(id), Emoji: args[1]}, nil
	case "/group":
		return parseGroup(args)
	case "/archive", "/unarchive":
		cmd := Command{Kind: KindArchive, Archived: name == "/archive"}
		if len(args) > 1 {
			return Command{}, invalid(name)
		}
		if len(args) == 1 {
			id, err := parseID(args[0])
			if err != nil {
				return Command{}, err
			}
			cmd.ChatID = domain.ChatID(id)
		}
		return cmd, nil
	case "/section":
		if len(args) == 0 {
			return Command{}, invalid(name)
		}
		section, err := domain.ParseSection(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindSection, Section: section, Text: strings.Join(args[1:], " ")}, nil
	case "/refresh":
		return Command{Kind: KindRefresh}, nil
	default:
		return Command{}, fmt.Errorf("%w: unknown command %s, try %s", errors.ErrInvalidCommand, name, usage)
	}
}

// parseGroup reads "<member ids> [admins=<ids>] <name words>".
func parseGroup(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("/group")
	}
	members, err := ParseUserIDs(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: KindGroup, Members: members, Admins: []domain.UserID{}}
	rest := args[1:]
	if list, ok := strings.CutPrefix(rest[0], "admins="); ok {
		if cmd.Admins, err = ParseUserIDs(list); err != nil {
			return Command{}, err
		}
		rest = rest[1:]
	}
	cmd.Text = strings.Join(rest, " ")
	return cmd, nil
}

// ParseUserIDs reads a comma separated id list such as "2,3".
func ParseUserIDs(list string) ([]domain.UserID, error) {
	parts := lo.Compact(strings.Split(list, ","))
	ids := make([]domain.UserID, 0, len(parts))
	for _, p := range parts {
		id, err := parseID(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, domain.UserID(id))
	}
	return ids, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", errors.ErrInvalidCommand, s)
	}
	return id, nil
}

func invalid(name string) error {
	return fmt.Errorf("%w: wrong arguments for %s, try %s", errors.ErrInvalidCommand, name, usage)
}

// Execute applies cmd through the service. active is the selected chat, if any.
func Execute(ctx context.Context, svc services.IChatService, cmd Command, active *domain.ChatID) error {
	switch cmd.Kind {
	case KindSend:
		return svc.SendDraft(ctx)
	case KindEdit:
		return svc.EditMessage(ctx, cmd.MessageID, cmd.Text)
	case KindDelete:
		return svc.DeleteMessage(ctx, cmd.MessageID)
	case KindReact:
		return svc.React(cmd.MessageID, cmd.Emoji)
	case KindGroup:
		id, err := svc.CreateGroup(ctx, cmd.Text, cmd.Members, cmd.Admins)
		if err != nil {
			return err
		}
		return svc.SelectChat(ctx, id)
	case KindArchive:
		chatID := cmd.ChatID
		if chatID == 0 {
			if active == nil {
				return errors.ErrNoActiveChat
			}
			chatID = *active
		}
		return svc.ArchiveChat(ctx, chatID, cmd.Archived)
	case KindSection:
		return svc.SetSection(cmd.Section, cmd.Text)
	case KindRefresh:
		return svc.RefreshChats(ctx)
	default:
		return errors.ErrInvalidCommand
	}
}
