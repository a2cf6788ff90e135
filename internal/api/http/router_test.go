package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/access"
	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/api/http/views"
	"github.com/spec-kit/clinic-portal/internal/authclient"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/guard"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/repository"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/worker"
)

const cookieName = "clinic_sid"

// authStub imitates the external auth service.
type authStub struct {
	mu         sync.Mutex
	logins     int
	lastLogins []string
}

var stubUsers = map[string]struct {
	password string
	token    string
	role     string
	fullName string
}{
	"admin":     {password: "secret", token: "tok-admin", role: "admin", fullName: "Clinic Administrator"},
	"reception": {password: "secret", token: "tok-reception", role: "Receptionist", fullName: "Front Desk"},
}

func (s *authStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		s.mu.Lock()
		s.logins++
		s.mu.Unlock()

		var body struct {
			Username     string `json:"username"`
			PasswordHash string `json:"password_hash"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		u, ok := stubUsers[body.Username]
		if !ok || u.password != body.PasswordHash {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": u.token, "token_type": "bearer"})

	case r.Method == http.MethodGet && r.URL.Path == "/auth/verify-token":
		token := r.URL.Query().Get("token")
		for name, u := range stubUsers {
			if u.token == token {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status": "valid",
					"time":   1800,
					"user":   map[string]any{"id": 1, "username": name, "full_name": u.fullName, "role": u.role},
				})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "expired", "time": 0})

	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/auth/last_login/"):
		s.mu.Lock()
		s.lastLogins = append(s.lastLogins, strings.TrimPrefix(r.URL.Path, "/auth/last_login/"))
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type portal struct {
	app      *fiber.App
	store    session.Store
	sessions *session.Manager
	staff    *repository.MemoryStaffRepository
	auth     *authStub
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	stub := &authStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return buildPortal(t, srv.URL+"/auth", stub)
}

func buildPortal(t *testing.T, authURL string, stub *authStub) *portal {
	t.Helper()
	metrics := observability.NewMetrics()
	store := session.NewMemory()
	sessions := session.NewManager(store, session.ManagerConfig{CookieName: cookieName, Lifetime: time.Hour})
	client := authclient.New(authclient.Config{BaseURL: authURL, Timeout: time.Second}, nil)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartLastLoginWorker(dispatcher, client, time.Second, nil)

	now := time.Now()
	staff := repository.NewMemoryStaffRepository(repository.SeedStaff(now))
	renderer, err := views.New()
	require.NoError(t, err)

	loginService := service.NewLoginService(service.LoginDependencies{Auth: client, Dispatcher: dispatcher, Metrics: metrics}, guard.DashboardPath, time.Second)
	dashboard := service.NewDashboardService(service.DashboardDependencies{
		Gate:            access.NewGate(access.DefaultItems()),
		StaffRepo:       staff,
		AppointmentRepo: repository.NewMemoryAppointmentRepository(repository.SeedAppointments(now)),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, MiddlewareConfig{Timeout: 5 * time.Second, DefaultLanguage: i18n.EN, Views: renderer})
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("clinic-portal", "test", handlers.Dependency{Name: "sessions", Pinger: store}, handlers.Dependency{Name: "auth", Pinger: client}),
		Login:     handlers.NewLoginHandler(loginService, sessions, renderer, nil),
		Dashboard: handlers.NewDashboardHandler(dashboard, renderer),
		Guard:     guard.New(client, time.Second, nil, metrics, dispatcher),
		Sessions:  sessions,
	})
	return &portal{app: app, store: store, sessions: sessions, staff: staff, auth: stub}
}

func (p *portal) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	sid := ""
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("no %s cookie in response", cookieName)
	}
	return sid
}

// signedIn saves token under a fresh session id.
func (p *portal) signedIn(t *testing.T, token string) string {
	t.Helper()
	sid := "0f8fad5b-d9cb-469f-a165-70867728950e"
	require.NoError(t, p.sessions.Open(sid).Save(context.Background(), token))
	return sid
}

func TestLoginFormForAnonymousVisitor(t *testing.T) {
	p := newPortal(t)
	for _, path := range []string{"/", "/login"} {
		resp, body := p.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, body, `action="/login"`)
		assert.Contains(t, body, "Sign In")
	}
}

func TestLoginEmptyFieldsNeverCallsAuth(t *testing.T) {
	p := newPortal(t)
	resp, body := p.do(t, loginRequest("", ""))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Please fill in all fields")
	assert.Zero(t, p.auth.logins)
}

func TestLoginInvalidCredentials(t *testing.T) {
	p := newPortal(t)
	resp, body := p.do(t, loginRequest("alice", "wrongpass"))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `value="alice"`)
	assert.NotContains(t, body, "http-equiv")

	_, err := p.store.Load(context.Background(), sessionCookie(t, resp))
	assert.ErrorIs(t, err, session.ErrNoToken)
	assert.Empty(t, p.auth.lastLogins)
}

func TestLoginSuccessThenDashboard(t *testing.T) {
	p := newPortal(t)
	resp, body := p.do(t, loginRequest("admin", "secret"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Login successful")
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, "url=/dashboard")
	assert.Equal(t, []string{"admin"}, p.auth.lastLogins)

	sid := sessionCookie(t, resp)
	token, err := p.store.Load(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", token)

	resp, body = p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), sid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Clinic Administrator")
	assert.Contains(t, body, "User Management")

	resp, _ = p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/", nil), sid))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLoginIssuesFreshSessionID(t *testing.T) {
	p := newPortal(t)
	planted := "11111111-2222-4333-8444-555555555555"

	resp, _ := p.do(t, withSession(loginRequest("admin", "secret"), planted))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sid := sessionCookie(t, resp)
	assert.NotEqual(t, planted, sid)

	resp, _ = p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/users", nil), planted))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/users", nil), sid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginAuthServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	authURL := srv.URL + "/auth"
	srv.Close()

	p := buildPortal(t, authURL, &authStub{})
	resp, body := p.do(t, loginRequest("admin", "secret"))

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Authentication service unavailable")
}

func TestDashboardRequiresSession(t *testing.T) {
	p := newPortal(t)
	resp, _ := p.do(t, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestExpiredTokenIsClearedAndRedirected(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-expired")

	resp, _ := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/appointments", nil), sid))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, err := p.store.Load(context.Background(), sid)
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestExpiredTokenOnLoginViewShowsForm(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-expired")

	resp, body := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/", nil), sid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/login"`)

	_, err := p.store.Load(context.Background(), sid)
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestReceptionistDeniedUserManagement(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-reception")

	resp, body := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/users", nil), sid))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access denied")
	assert.NotContains(t, body, "User Management")
	assert.Zero(t, p.staff.Calls())
}

func TestAdminSeesUserManagement(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-admin")

	resp, body := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/users", nil), sid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "drsmith")
	assert.Contains(t, body, "Delete")
	assert.Equal(t, 1, p.staff.Calls())
}

func TestReceptionistAppointmentsReadOnly(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-reception")

	resp, body := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/appointments", nil), sid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Read-only view")
	assert.Contains(t, body, "Mia Wong")
	assert.NotContains(t, body, ">Edit<")
}

func TestUnknownSectionIsNotFound(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-admin")

	resp, _ := p.do(t, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/billing", nil), sid))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	p := newPortal(t)
	sid := p.signedIn(t, "tok-admin")

	resp, _ := p.do(t, withSession(httptest.NewRequest(http.MethodPost, "/logout", nil), sid))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, err := p.store.Load(context.Background(), sid)
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestLanguageQueryIsRemembered(t *testing.T) {
	p := newPortal(t)
	resp, body := p.do(t, httptest.NewRequest(http.MethodGet, "/?lang=tr", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Giriş Yap")

	var lang string
	for _, c := range resp.Cookies() {
		if c.Name == "lang" {
			lang = c.Value
		}
	}
	require.Equal(t, "tr", lang)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: lang})
	_, body = p.do(t, req)
	assert.Contains(t, body, "Giriş Yap")

	req = loginRequest("", "")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "de"})
	_, body = p.do(t, req)
	assert.Contains(t, body, "Bitte füllen Sie alle Felder aus")
}

func TestHealthEndpoints(t *testing.T) {
	p := newPortal(t)

	resp, _ := p.do(t, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := p.do(t, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "ready", payload.Status)
	assert.Equal(t, "ok", payload.Dependencies["sessions"])
	assert.Equal(t, "ok", payload.Dependencies["auth"])
}

func TestUnknownRouteRendersErrorPage(t *testing.T) {
	p := newPortal(t)
	resp, body := p.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "404")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Accept", "application/json")
	resp, body = p.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"NOT_FOUND"`)
}
