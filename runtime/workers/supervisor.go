package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"messenger/contract"
	"messenger/errors"
)

const defaultRestartDelay = 200 * time.Millisecond

var _ contract.ISupervisor = (*Supervisor)(nil)

// Supervisor runs each worker in its own goroutine, restarts it after a panic
// and waits for all of them on shutdown.
// A worker stops for good when it returns nil or when its context is done.
type Supervisor struct {
	wg           sync.WaitGroup
	log          *slog.Logger
	restartDelay time.Duration
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log, restartDelay: defaultRestartDelay}
}

func (s *Supervisor) WithRestartDelay(delay time.Duration) *Supervisor {
	s.restartDelay = delay
	return s
}

// Start runs a worker under supervision.
// A failure in one worker must not stop the supervisor itself.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Debug(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Debug(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Debug("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			timer := time.NewTimer(s.restartDelay)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// Wait blocks until every started worker has returned.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}
