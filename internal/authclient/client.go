package authclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultLoginFailure = "Login failed"

// Config describes how to reach the auth service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client wraps the three auth service operations. Calls are never retried.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a client against cfg.BaseURL (e.g. http://127.0.0.1:8000/auth).
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(logger.Sugar())
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	return &Client{http: rc, logger: logger}
}

// Authenticate exchanges a username/password pair for an access token.
// A non-2xx answer yields a *CredentialsError matching ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	var (
		ok   loginResponse
		fail errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Username: username, PasswordHash: password}).
		SetResult(&ok).
		SetError(&fail).
		Post("/login")
	if resp == nil || resp.StatusCode() == 0 {
		return nil, fmt.Errorf("%w: login: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		detail := fail.Detail
		if detail == "" {
			detail = defaultLoginFailure
		}
		return nil, &CredentialsError{Status: resp.StatusCode(), Detail: detail}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode login response: %v", ErrUnavailable, err)
	}
	if ok.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response carried no access_token", ErrUnavailable)
	}
	return &LoginResult{AccessToken: ok.AccessToken, TokenType: ok.TokenType}, nil
}

// VerifyToken asks the auth service whether token is still good.
// Any failure, including transport errors and malformed bodies, is reported as invalid.
func (c *Client) VerifyToken(ctx context.Context, token string) Verification {
	if token == "" {
		return Verification{}
	}

	var body verifyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		SetResult(&body).
		Get("/verify-token")
	if err != nil {
		c.logger.Debug("token verification failed", zap.Error(err))
		return Verification{}
	}
	if !resp.IsSuccess() {
		c.logger.Debug("token verification rejected", zap.Int("status", resp.StatusCode()))
		return Verification{}
	}
	if body.Status != statusValid || body.Time <= 0 {
		return Verification{}
	}

	return Verification{
		Valid:     true,
		Remaining: time.Duration(body.Time * float64(time.Second)),
		User:      body.User.toDomain(),
	}
}

// RecordLastLogin stamps the user's last login time. Callers treat failure as best effort.
func (c *Client) RecordLastLogin(ctx context.Context, username string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("username", username).
		Patch("/last_login/{username}")
	if err != nil {
		return fmt.Errorf("record last login: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("record last login: unexpected status %d", resp.StatusCode())
	}
	return nil
}

// Ping checks that the auth service answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	return nil
}
