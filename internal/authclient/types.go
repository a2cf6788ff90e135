package authclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

var (
	// ErrInvalidCredentials is returned when the auth service rejects a username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable is returned when the auth service could not be reached or answered garbage.
	ErrUnavailable = errors.New("auth service unavailable")
)

// CredentialsError carries the service's optional detail message for a rejected login.
type CredentialsError struct {
	Status int
	Detail string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("login rejected (%d): %s", e.Status, e.Detail)
}

func (e *CredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// LoginResult is the successful outcome of a credential exchange.
type LoginResult struct {
	AccessToken string
	TokenType   string
}

// Verification is the fail-closed outcome of a token check.
// When Valid is false, User is nil.
type Verification struct {
	Valid     bool
	Remaining time.Duration
	User      *domain.UserData
}

const statusValid = "valid"

type loginRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type verifyResponse struct {
	Status string    `json:"status"`
	Time   float64   `json:"time"`
	User   *wireUser `json:"user"`
}

type wireUser struct {
	ID       any    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (w *wireUser) toDomain() *domain.UserData {
	if w == nil {
		return nil
	}
	u := &domain.UserData{
		Username: w.Username,
		FullName: w.FullName,
		Email:    w.Email,
		Role:     domain.ParseRole(w.Role),
	}
	if w.ID != nil {
		u.ID = fmt.Sprint(w.ID)
	}
	return u
}
