package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/session"
)

const userKey = "guard_user"

const (
	LoginPath     = "/"
	DashboardPath = "/dashboard"
)

// Sessions resolves the session of a request.
type Sessions interface {
	For(c *fiber.Ctx) *session.Session
}

// LoginView sends already signed-in visitors to the dashboard and lets everyone else through.
func (g *Guard) LoginView(sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := g.Check(c.UserContext(), sessions.For(c))
		if err != nil {
			return abandoned(err)
		}
		if res.State == Authorized {
			return c.Redirect(DashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// Protected admits only verified sessions and stores the user for later handlers.
func (g *Guard) Protected(sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := g.Check(c.UserContext(), sessions.For(c))
		if err != nil {
			return abandoned(err)
		}
		if res.State != Authorized {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		c.Locals(userKey, res.User)
		return c.Next()
	}
}

// UserFromContext returns the verified user stored by Protected.
func UserFromContext(c *fiber.Ctx) (*domain.UserData, bool) {
	user, ok := c.Locals(userKey).(*domain.UserData)
	return user, ok && user != nil
}

func abandoned(err error) error {
	if errors.Is(err, ErrDiscarded) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "request abandoned before verification finished")
	}
	return err
}
