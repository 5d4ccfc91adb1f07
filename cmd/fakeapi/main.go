// fakeapi serves the in-memory chat API seeded with demo data, so the
// client can be tried without the real backend:
//
//	go run ./cmd/fakeapi -addr :8000
//	MESSENGER_API_URL=http://localhost:8000/api.php go run ./cmd/messenger tui
package main

import (
	"context"
	goerrors "errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger/internal/apitest"

	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakeapi terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	addr := flag.String("addr", ":8000", "address to listen on")
	empty := flag.Bool("empty", false, "start without demo data")
	level := flag.String("log-level", "INFO", "log level")
	flag.Parse()

	logger := logs.GetLoggerFromString(*level)

	api := apitest.New()
	if !*empty {
		api.Seed()
	}
	srv := &http.Server{Addr: *addr, Handler: logRequests(logger, api.Router()), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting fake chat API", "address", *addr, "seeded", !*empty)
		if err := srv.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, err
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request served", "method", r.Method, "query", r.URL.RawQuery, "duration", time.Since(start))
	})
}
