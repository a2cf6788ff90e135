package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// TokenField is the fixed name the bearer token is stored under.
const TokenField = "token"

// ErrNoToken is returned by Load when no token is persisted for the session.
var ErrNoToken = errors.New("session: no token")

// Store persists one bearer token per session ID.
// After Clear, Load returns ErrNoToken until the next Save.
type Store interface {
	Save(ctx context.Context, sid, token string, ttl time.Duration) error
	Load(ctx context.Context, sid string) (string, error)
	Clear(ctx context.Context, sid string) error
	Ping(ctx context.Context) error
}

// Fingerprint is a short, stable stand-in for a session id in log lines. The id itself grants access.
func Fingerprint(sid string) string {
	if sid == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:6])
}
