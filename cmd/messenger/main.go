package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"messenger/internal"

	"github.com/Netflix/go-env"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

// Exit codes to provide meaningful status to the shell.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

var errConfig = goerrors.New("config error")

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "messenger terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps os.Exit out of the way so every deferred cleanup executes.
func run(args []string, out io.Writer) (int, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{out: out}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(out)
	if err := root.ExecuteContext(ctx); err != nil {
		if goerrors.Is(err, errConfig) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

// cli carries the state shared by the subcommands.
type cli struct {
	out     io.Writer
	app     *app
	logFile io.Closer
}

// open loads the configuration and wires the client. The interactive
// command logs to a file so records don't tear the screen.
func (c *cli) open(cmd *cobra.Command) error {
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	if cmd.Name() == "tui" {
		f, err := tea.LogToFile("messenger.log", "")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		c.logFile = f
		var level slog.Level
		if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	a, err := newApp(cmd.Context(), config, logger)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app.log.Info("Program stopped cleanly")
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "messenger",
		Short: "Chat client for the messenger API",
		Long: `messenger keeps a local view of your chats in sync with the messenger API.

Run "messenger tui" for the interactive client, or use the subcommands
for one-shot operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
	}
	root.AddCommand(
		newTUICmd(c),
		newChatsCmd(c),
		newContactsCmd(c),
		newMessagesCmd(c),
		newSendCmd(c),
		newEditCmd(c),
		newDeleteCmd(c),
		newReactCmd(c),
		newGroupCmd(c),
		newArchiveCmd(c),
		newWatchCmd(c),
		newDraftsCmd(c),
	)
	return root
}
