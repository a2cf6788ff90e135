package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/access"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Message is a one-line notice shown above a form or page.
type Message struct {
	Kind string
	Text string
}

// LoginData feeds the login view.
type LoginData struct {
	T         i18n.Translator
	Languages []i18n.Language
	Username  string
	Message   *Message
	Redirect  *Redirect
}

// Redirect renders a meta refresh. Navigating away before it fires cancels it.
type Redirect struct {
	To      string
	Seconds int
}

// MenuEntry is one rendered header link.
type MenuEntry struct {
	Label  string
	Path   string
	Active bool
}

// DashboardData feeds the dashboard layout.
type DashboardData struct {
	T         i18n.Translator
	Languages []i18n.Language
	User      domain.UserData
	Menu      []MenuEntry
	Page      service.Page
	Content   template.HTML
}

// ErrorData feeds the error view.
type ErrorData struct {
	T       i18n.Translator
	Status  int
	Message string
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"datetime":  formatDateTime,
		"clock":     formatClock,
		"lastLogin": formatLastLogin,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func formatDateTime(t time.Time) string { return t.Format("2006-01-02 15:04") }
func formatClock(t time.Time) string    { return t.Format("15:04") }

func formatLastLogin(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDateTime(*t)
}

// NewRedirect converts a delay into whole meta-refresh seconds, rounding up.
func NewRedirect(to string, delay time.Duration) *Redirect {
	if delay < 0 {
		delay = 0
	}
	return &Redirect{To: to, Seconds: int(math.Ceil(delay.Seconds()))}
}

// Menu turns gate items into header links.
func Menu(t i18n.Translator, items []access.Item, current domain.Section) []MenuEntry {
	entries := make([]MenuEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, MenuEntry{Label: t.T(item.Label), Path: item.Path, Active: item.Section == current})
	}
	return entries
}

// Login renders the login view.
func (r *Renderer) Login(c *fiber.Ctx, status int, data LoginData) error {
	return r.render(c, status, "login", data)
}

// Dashboard renders the layout around the section body chosen by the Page variant.
func (r *Renderer) Dashboard(c *fiber.Ctx, status int, data DashboardData) error {
	content, err := r.execute(sectionTemplate(data.Page), data)
	if err != nil {
		return err
	}
	data.Content = template.HTML(content)
	return r.render(c, status, "dashboard", data)
}

// Error renders a plain error page.
func (r *Renderer) Error(c *fiber.Ctx, data ErrorData) error {
	return r.render(c, data.Status, "error", data)
}

func sectionTemplate(page service.Page) string {
	switch page.(type) {
	case service.OverviewPage:
		return "section_overview"
	case service.AppointmentsPage:
		return "section_appointments"
	case service.PatientsPage:
		return "section_patients"
	case service.UsersPage:
		return "section_users"
	case service.SettingsPage:
		return "section_settings"
	default:
		return "section_denied"
	}
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) render(c *fiber.Ctx, status int, name string, data any) error {
	body, err := r.execute(name, data)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}
