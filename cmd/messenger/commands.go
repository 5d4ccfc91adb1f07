package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"messenger/cmd/messenger/tui"
	"messenger/domain"
	"messenger/domain/event"
	"messenger/errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const reactionTimeout = 10 * time.Second

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := c.app.service
			program := tea.NewProgram(tui.NewModel(cmd.Context(), svc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			unsubscribe := svc.Subscribe(tui.NewProgramSink(program.Send))
			defer unsubscribe()
			_, err := program.Run()
			if goerrors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

func newChatsCmd(c *cli) *cobra.Command {
	var section, query string
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List chats of a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := c.app.service
			parsed, err := domain.ParseSection(section)
			if err != nil {
				return err
			}
			if err := svc.RefreshChats(cmd.Context()); err != nil {
				return err
			}
			if err := svc.SetSection(parsed, query); err != nil {
				return err
			}
			renderChats(c.out, svc.ChatRows())
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", string(domain.SectionChats), "chats, archive or search")
	cmd.Flags().StringVar(&query, "query", "", "name filter for the search section")
	return cmd
}

func newContactsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contacts, err := c.app.orchestrator.LoadContacts(cmd.Context())
			if err != nil {
				return err
			}
			renderContacts(c.out, contacts)
			return nil
		},
	}
}

func newMessagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "messages <chat_id>",
		Short: "Print the thread of a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openChat(cmd.Context(), args[0]); err != nil {
				return err
			}
			renderThread(c.out, c.app.service.Thread())
			return nil
		},
	}
}

func newSendCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "send <chat_id> <text>...",
		Short: "Send a message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openChat(cmd.Context(), args[0]); err != nil {
				return err
			}
			chatID := *c.app.service.Snapshot().ActiveChat
			msg, err := c.app.service.SendMessage(cmd.Context(), chatID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "sent message %d\n", msg.ID)
			return nil
		},
	}
}

func newEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <chat_id> <message_id> <text>...",
		Short: "Edit a message of a chat",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageID, err := c.openMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.app.service.EditMessage(cmd.Context(), messageID, strings.Join(args[2:], " "))
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chat_id> <message_id>",
		Short: "Delete a message of a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageID, err := c.openMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.app.service.DeleteMessage(cmd.Context(), messageID)
		},
	}
}

func newReactCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "react <chat_id> <message_id> <emoji>",
		Short: "React to a message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageID, err := c.openMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			settled := make(chan domain.Reaction, 1)
			unsubscribe := c.app.service.Subscribe(sinkFunc(func(_ context.Context, e event.DomainEvent) error {
				if s, ok := e.(event.ReactionSettled); ok && s.MessageID == messageID {
					select {
					case settled <- s.Reaction:
					default:
					}
				}
				return nil
			}))
			defer unsubscribe()

			emoji := args[2]
			msg, _, _ := c.app.service.Snapshot().FindMessage(messageID)
			present := lo.ContainsBy(msg.Reactions, func(r domain.Reaction) bool {
				return r.Emoji == emoji && r.UserID == c.app.userID && r.Status != domain.ReactionFailed
			})
			if present {
				fmt.Fprintln(c.out, "reaction already present")
				return nil
			}
			if err := c.app.service.React(messageID, emoji); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), reactionTimeout)
			defer cancel()
			select {
			case r := <-settled:
				if r.Status == domain.ReactionFailed {
					return fmt.Errorf("reaction %s was not saved", r.Emoji)
				}
				fmt.Fprintf(c.out, "reacted %s\n", r.Emoji)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

func newGroupCmd(c *cli) *cobra.Command {
	var (
		name    string
		members []int64
		admins  []int64
	)
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create a group chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			toUserIDs := func(ids []int64) []domain.UserID {
				return lo.Map(ids, func(id int64, _ int) domain.UserID { return domain.UserID(id) })
			}
			id, err := c.app.service.CreateGroup(cmd.Context(), name, toUserIDs(members), toUserIDs(admins))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "created group %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().Int64SliceVar(&members, "member", nil, "member user ids")
	cmd.Flags().Int64SliceVar(&admins, "admin", nil, "admin user ids, each must also be a member")
	return cmd
}

func newArchiveCmd(c *cli) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "archive <chat_id>",
		Short: "Archive a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseChatID(args[0])
			if err != nil {
				return err
			}
			return c.app.service.ArchiveChat(cmd.Context(), chatID, !undo)
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "move the chat back out of the archive")
	return cmd
}

func newDraftsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "List the drafts kept in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts, err := c.app.drafts.ListDrafts()
			if err != nil {
				return err
			}
			active, err := c.app.drafts.GetActiveChat()
			if err != nil {
				return err
			}
			renderDrafts(c.out, drafts, active)
			return nil
		},
	}
}

func newWatchCmd(c *cli) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "watch <chat_id>",
		Short: "Follow who is typing in a chat until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unsubscribe := c.app.service.Subscribe(newConsoleSink(c.out, verbose))
			defer unsubscribe()
			if err := c.openChat(cmd.Context(), args[0]); err != nil {
				return err
			}
			renderThread(c.out, c.app.service.Thread())
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every store event")
	return cmd
}

// openChat loads the chat list then selects the chat.
func (c *cli) openChat(ctx context.Context, arg string) error {
	chatID, err := parseChatID(arg)
	if err != nil {
		return err
	}
	if err := c.app.service.RefreshChats(ctx); err != nil {
		return err
	}
	return c.app.service.SelectChat(ctx, chatID)
}

func (c *cli) openMessage(ctx context.Context, chatArg, messageArg string) (domain.MessageID, error) {
	id, err := strconv.ParseInt(messageArg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a message id", errors.ErrInvalidCommand, messageArg)
	}
	if err := c.openChat(ctx, chatArg); err != nil {
		return 0, err
	}
	return domain.MessageID(id), nil
}

func parseChatID(arg string) (domain.ChatID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a chat id", errors.ErrInvalidCommand, arg)
	}
	return domain.ChatID(id), nil
}
