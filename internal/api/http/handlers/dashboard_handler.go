package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/http/views"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/guard"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util/errorutil"
)

// DashboardHandler renders dashboard sections for verified users.
type DashboardHandler struct {
	dashboard *service.DashboardService
	views     *views.Renderer
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, renderer *views.Renderer) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, views: renderer}
}

// Overview handles GET /dashboard.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	return h.render(c, domain.SectionOverview)
}

// Section handles GET /dashboard/:section.
func (h *DashboardHandler) Section(c *fiber.Ctx) error {
	section, ok := domain.ParseSection(c.Params("section"))
	if !ok {
		return apperrors.NewNotFound("section", map[string]any{"section": c.Params("section")})
	}
	return h.render(c, section)
}

func (h *DashboardHandler) render(c *fiber.Ctx, section domain.Section) error {
	user, ok := guard.UserFromContext(c)
	if !ok {
		return c.Redirect(guard.LoginPath, fiber.StatusFound)
	}

	page, err := h.dashboard.Page(c.UserContext(), *user, section)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSection) {
			return apperrors.NewNotFound("section", nil)
		}
		return apperrors.MapError(err)
	}

	status := http.StatusOK
	if _, denied := page.(service.AccessDeniedPage); denied {
		status = http.StatusForbidden
	}

	t := views.Translator(c)
	return h.views.Dashboard(c, status, views.DashboardData{
		T:         t,
		Languages: i18n.Languages,
		User:      *user,
		Menu:      views.Menu(t, h.dashboard.Menu(*user), section),
		Page:      page,
	})
}
