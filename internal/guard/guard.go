package guard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/authclient"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/session"
)

// State is a step of the verification state machine.
type State int

const (
	Unverified State = iota
	Verifying
	Authorized
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Unverified:
		return "unverified"
	case Verifying:
		return "verifying"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "invalid"
	}
}

// ErrDiscarded is returned when the caller's context ended while verification was in flight.
// The result must not drive navigation or touch the session.
var ErrDiscarded = errors.New("guard: verification discarded")

// Verifier checks a token against the auth service.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) authclient.Verification
}

// TokenSession is the slice of a session the guard needs.
type TokenSession interface {
	ID() string
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Result is the outcome of one Check. User is set only when State is Authorized.
type Result struct {
	State     State
	User      *domain.UserData
	Remaining time.Duration
}

// Guard runs the verification step for every guarded view. Nothing is cached between checks.
type Guard struct {
	verifier Verifier
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics
	events   events.Dispatcher
}

// New builds a Guard. timeout bounds each verification; expiry fails closed.
// dispatcher may be nil.
func New(verifier Verifier, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Guard{verifier: verifier, timeout: timeout, logger: logger, metrics: metrics, events: dispatcher}
}

// Check loads the session token and verifies it.
func (g *Guard) Check(ctx context.Context, sess TokenSession) (Result, error) {
	state := Unverified

	token, err := sess.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoToken) {
			g.logger.Warn("session load failed, treating as signed out", zap.Error(err))
		}
		return g.finish(state, Result{State: Unauthorized}), nil
	}

	state = g.transition(state, Verifying)
	vctx, cancel := context.WithTimeout(ctx, g.timeout)
	v := g.verifier.VerifyToken(vctx, token)
	timedOut := errors.Is(vctx.Err(), context.DeadlineExceeded)
	cancel()

	if ctx.Err() != nil {
		g.logger.Debug("verification result discarded", zap.Error(ctx.Err()))
		g.metrics.RecordGuard("discarded")
		return Result{State: state}, ErrDiscarded
	}

	if !v.Valid {
		if timedOut {
			g.logger.Warn("token verification timed out", zap.Duration("timeout", g.timeout))
		}
		if err := sess.Clear(ctx); err != nil {
			g.logger.Warn("failed to clear invalid session token", zap.Error(err))
		}
		g.publish(ctx, events.NewEvent(events.EventSessionInvalidated, "", sess.ID(), nil))
		return g.finish(state, Result{State: Unauthorized}), nil
	}

	user := v.User
	if user == nil {
		user = &domain.UserData{Role: domain.RoleUnknown}
	}
	return g.finish(state, Result{State: Authorized, User: user, Remaining: v.Remaining}), nil
}

func (g *Guard) transition(from, to State) State {
	g.logger.Debug("guard transition", zap.Stringer("from", from), zap.Stringer("to", to))
	return to
}

func (g *Guard) finish(from State, res Result) Result {
	g.transition(from, res.State)
	g.metrics.RecordGuard(res.State.String())
	return res
}

func (g *Guard) publish(ctx context.Context, event events.Event) {
	if g.events == nil {
		return
	}
	if err := g.events.Publish(ctx, event); err != nil {
		g.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
