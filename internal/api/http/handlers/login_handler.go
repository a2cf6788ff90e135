package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/api/http/views"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/guard"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util/errorutil"
)

// LoginHandler serves the login view and the session endpoints behind it.
type LoginHandler struct {
	login    *service.LoginService
	sessions guard.Sessions
	views    *views.Renderer
	logger   *zap.Logger
}

// NewLoginHandler constructs handler.
func NewLoginHandler(login *service.LoginService, sessions guard.Sessions, renderer *views.Renderer, logger *zap.Logger) *LoginHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginHandler{login: login, sessions: sessions, views: renderer, logger: logger}
}

// Form handles GET / and GET /login.
func (h *LoginHandler) Form(c *fiber.Ctx) error {
	return h.views.Login(c, http.StatusOK, h.loginData(c, "", nil))
}

// Submit handles POST /login. Failures re-render the form with a translated message.
func (h *LoginHandler) Submit(c *fiber.Ctx) error {
	creds := domain.Credentials{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	t := views.Translator(c)

	outcome, err := h.login.Login(c.UserContext(), h.sessions.For(c), creds)
	if err != nil {
		status, key := loginFailure(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("login failed", zap.String("username", creds.Username), zap.Error(err))
		}
		msg := &views.Message{Kind: "error", Text: t.T(key)}
		return h.views.Login(c, status, h.loginData(c, creds.Username, msg))
	}

	data := h.loginData(c, outcome.Username, &views.Message{Kind: "success", Text: t.T(i18n.MsgSuccessLogin)})
	data.Redirect = views.NewRedirect(outcome.RedirectTo, outcome.Delay)
	return h.views.Login(c, http.StatusOK, data)
}

// Logout handles POST /logout.
func (h *LoginHandler) Logout(c *fiber.Ctx) error {
	if err := h.login.Logout(c.UserContext(), h.sessions.For(c)); err != nil {
		return err
	}
	return c.Redirect(guard.LoginPath, fiber.StatusFound)
}

func (h *LoginHandler) loginData(c *fiber.Ctx, username string, msg *views.Message) views.LoginData {
	return views.LoginData{
		T:         views.Translator(c),
		Languages: i18n.Languages,
		Username:  username,
		Message:   msg,
	}
}

func loginFailure(err error) (int, i18n.Key) {
	switch {
	case errors.Is(err, service.ErrEmptyFields):
		return http.StatusBadRequest, i18n.ErrEmptyFields
	case apperrors.HasCode(err, apperrors.CodeInvalidCredentials):
		return http.StatusUnauthorized, i18n.ErrInvalidCredentials
	case apperrors.HasCode(err, apperrors.CodeUpstreamUnavailable):
		return http.StatusBadGateway, i18n.ErrServiceDown
	default:
		return http.StatusInternalServerError, i18n.ErrServiceDown
	}
}
