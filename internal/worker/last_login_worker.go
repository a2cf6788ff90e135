package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/events"
)

// LastLoginRecorder stamps a user's last login upstream.
type LastLoginRecorder interface {
	RecordLastLogin(ctx context.Context, username string) error
}

// LastLoginWorker updates last-login after each successful login.
// Each update has its own short deadline and a failure never fails the login.
type LastLoginWorker struct {
	recorder LastLoginRecorder
	timeout  time.Duration
	logger   *zap.Logger
}

// StartLastLoginWorker subscribes the worker to login_succeeded.
func StartLastLoginWorker(dispatcher events.Dispatcher, recorder LastLoginRecorder, timeout time.Duration, logger *zap.Logger) *LastLoginWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &LastLoginWorker{recorder: recorder, timeout: timeout, logger: logger}
	if dispatcher != nil && recorder != nil {
		dispatcher.Subscribe(events.EventLoginSucceeded, w.handle)
	}
	return w
}

func (w *LastLoginWorker) handle(ctx context.Context, event events.Event) error {
	if event.Username == "" {
		return nil
	}
	updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	if err := w.recorder.RecordLastLogin(updateCtx, event.Username); err != nil {
		w.logger.Warn("last login update failed", zap.String("username", event.Username), zap.Error(err))
	}
	return nil
}
