package domain

import "fmt"

// Credentials is a username/password pair entered on the login view.
// It is sent to the auth service once and never persisted.
type Credentials struct {
	Username string
	Password string
}

// String redacts the password so the pair can never leak through a log line.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q, Password: [redacted]}", c.Username)
}

// GoString keeps %#v from printing the password either.
func (c Credentials) GoString() string {
	return c.String()
}
