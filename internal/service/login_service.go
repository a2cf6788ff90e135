package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/authclient"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/observability"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util/errorutil"
)

// ErrEmptyFields is returned when the username or password is blank. No request is made.
var ErrEmptyFields = errors.New("username and password required")

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*authclient.LoginResult, error)
}

// TokenSession is where a successful login persists its token.
// Rotate must move the session to a fresh id so an id known before login never gains the token.
type TokenSession interface {
	ID() string
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Rotate(ctx context.Context) error
}

// LoginOutcome tells the view where to go after showing the success message.
type LoginOutcome struct {
	Username   string
	RedirectTo string
	Delay      time.Duration
}

// LoginService sequences a login attempt: authenticate, persist the token, announce the login.
type LoginService struct {
	auth          Authenticator
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	metrics       *observability.Metrics
	redirectTo    string
	redirectDelay time.Duration
}

// LoginDependencies encapsulates collaborators of the login flow.
type LoginDependencies struct {
	Auth       Authenticator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewLoginService builds the service.
func NewLoginService(deps LoginDependencies, redirectTo string, redirectDelay time.Duration) *LoginService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	return &LoginService{
		auth:          deps.Auth,
		dispatcher:    dispatcher,
		logger:        logger,
		metrics:       deps.Metrics,
		redirectTo:    redirectTo,
		redirectDelay: redirectDelay,
	}
}

// Login runs one attempt. On any failure nothing is persisted.
// On success the session id is rotated, then the token is saved before login_succeeded is published, so the last-login
// update and the redirect only ever follow a persisted session.
func (s *LoginService) Login(ctx context.Context, sess TokenSession, creds domain.Credentials) (*LoginOutcome, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		s.metrics.RecordLogin("empty_fields")
		return nil, ErrEmptyFields
	}

	res, err := s.auth.Authenticate(ctx, username, creds.Password)
	if err != nil {
		return nil, s.loginFailed(ctx, sess, username, err)
	}

	if err := sess.Rotate(ctx); err != nil {
		s.logger.Error("failed to rotate session", zap.String("username", username), zap.Error(err))
		s.metrics.RecordLogin("store_failed")
		return nil, apperrors.NewInternalError(err)
	}
	if err := sess.Save(ctx, res.AccessToken); err != nil {
		s.logger.Error("failed to persist session token", zap.String("username", username), zap.Error(err))
		s.metrics.RecordLogin("store_failed")
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordLogin("success")
	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, username, sess.ID(), nil))

	return &LoginOutcome{Username: username, RedirectTo: s.redirectTo, Delay: s.redirectDelay}, nil
}

// Logout drops the session token.
func (s *LoginService) Logout(ctx context.Context, sess TokenSession) error {
	if err := sess.Clear(ctx); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.NewEvent(events.EventLoggedOut, "", sess.ID(), nil))
	return nil
}

func (s *LoginService) loginFailed(ctx context.Context, sess TokenSession, username string, err error) error {
	var credErr *authclient.CredentialsError
	if errors.As(err, &credErr) {
		s.metrics.RecordLogin("invalid_credentials")
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, username, sess.ID(),
			events.LoginFailedPayload{Reason: "invalid_credentials", Status: credErr.Status}))
		return apperrors.NewInvalidCredentials(credErr.Detail, err)
	}
	if errors.Is(err, authclient.ErrInvalidCredentials) {
		s.metrics.RecordLogin("invalid_credentials")
		return apperrors.NewInvalidCredentials("", err)
	}

	s.logger.Warn("login failed: auth service unavailable", zap.String("username", username), zap.Error(err))
	s.metrics.RecordLogin("upstream_unavailable")
	s.publish(ctx, events.NewEvent(events.EventLoginFailed, username, sess.ID(),
		events.LoginFailedPayload{Reason: "upstream_unavailable"}))
	return apperrors.NewUpstreamUnavailable(err)
}

func (s *LoginService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
