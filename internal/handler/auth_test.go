package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func registerGates(s *testServer) {
	s.router.GET("/dashboard", RequireUser(), s.api.ShowDashboard)
	s.router.GET("/admin", RequireAdminPage(), s.api.ShowAdmin)
	admin := s.router.Group("/admin/api", RequireAdminAPI())
	admin.GET("/stats", s.api.GetStats)
}

func TestAdminPageRedirectRules(t *testing.T) {
	server := newTestServer(t, Options{})
	registerGates(server)
	_, userToken := server.createUser(t, "user@example.com", false)
	_, adminToken := server.createUser(t, "admin@example.com", true)

	cases := []struct {
		name     string
		token    string
		status   int
		location string
	}{
		{name: "anonymous", token: "", status: http.StatusFound, location: "/"},
		{name: "non-admin", token: userToken, status: http.StatusFound, location: "/"},
		{name: "admin", token: adminToken, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := server.do(t, http.MethodGet, "/admin", tc.token, nil)
			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, recorder.Code)
			}
			if got := recorder.Header().Get("Location"); got != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, got)
			}
		})
	}

	name, _ := server.html.lastRendered()
	if name != "admin.html" {
		t.Fatalf("expected admin.html to be rendered, got %q", name)
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	server := newTestServer(t, Options{})
	registerGates(server)
	_, token := server.createUser(t, "jane.doe@example.com", false)

	recorder := server.do(t, http.MethodGet, "/dashboard", "", nil)
	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}

	recorder = server.do(t, http.MethodGet, "/dashboard", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	name, data := server.html.lastRendered()
	if name != "dashboard.html" {
		t.Fatalf("expected dashboard.html, got %q", name)
	}
	if data["firstName"] != "Test" {
		t.Fatalf("expected first name Test, got %v", data["firstName"])
	}
}

func TestAdminAPIRejectsAnonymousAndNonAdmin(t *testing.T) {
	server := newTestServer(t, Options{})
	registerGates(server)
	_, userToken := server.createUser(t, "user@example.com", false)
	_, adminToken := server.createUser(t, "admin@example.com", true)

	if recorder := server.do(t, http.MethodGet, "/admin/api/stats", "", nil); recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", recorder.Code)
	}
	if recorder := server.do(t, http.MethodGet, "/admin/api/stats", userToken, nil); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", recorder.Code)
	}
	if recorder := server.do(t, http.MethodGet, "/admin/api/stats", "not-a-token", nil); recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", recorder.Code)
	}

	recorder := server.do(t, http.MethodGet, "/admin/api/stats", adminToken, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", recorder.Code)
	}
	stats := decodeBody(t, recorder)["stats"].(map[string]interface{})
	if stats["users"].(float64) != 2 {
		t.Fatalf("expected 2 users, got %v", stats["users"])
	}
}

func TestLoginRedirectsByRole(t *testing.T) {
	server := newTestServer(t, Options{})
	server.router.POST("/login", server.api.Login)
	server.createUser(t, "user@example.com", false)
	server.createUser(t, "admin@example.com", true)

	login := func(email, password string) *httptest.ResponseRecorder {
		form := url.Values{"email": {email}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		recorder := httptest.NewRecorder()
		server.router.ServeHTTP(recorder, req)
		return recorder
	}

	if recorder := login("admin@example.com", "secret123"); recorder.Header().Get("Location") != "/admin" {
		t.Fatalf("expected admin to land on /admin, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	recorder := login("USER@example.com", "secret123")
	if recorder.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected user to land on /dashboard, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if recorder.Header().Get("Set-Cookie") == "" {
		t.Fatal("expected session cookie to be set")
	}

	recorder = login("user@example.com", "wrong-password")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", recorder.Code)
	}
	name, data := server.html.lastRendered()
	if name != "login.html" || data["error"] != "Invalid email or password" {
		t.Fatalf("expected login page with error, got %q %v", name, data["error"])
	}
}

func TestSessionCookieAuthenticatesFollowUpRequests(t *testing.T) {
	server := newTestServer(t, Options{})
	registerGates(server)
	server.router.POST("/login", server.api.Login)
	server.router.GET("/logout", server.api.Logout)
	server.createUser(t, "admin@example.com", true)

	form := url.Values{"email": {"admin@example.com"}, "password": {"secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)
	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	recorder = httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected session to authorize admin api, got %d", recorder.Code)
	}
}

func TestIssueTokenAuthorizesBearerRequests(t *testing.T) {
	server := newTestServer(t, Options{})
	registerGates(server)
	server.router.POST("/api/auth/token", server.api.IssueToken)
	server.createUser(t, "admin@example.com", true)

	recorder := server.do(t, http.MethodPost, "/api/auth/token", "", map[string]string{"email": "admin@example.com", "password": "nope"})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", recorder.Code)
	}

	recorder = server.do(t, http.MethodPost, "/api/auth/token", "", map[string]string{"email": "admin@example.com", "password": "secret123"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	token, _ := body["token"].(string)
	if token == "" || body["token_type"] != "Bearer" {
		t.Fatalf("unexpected token payload: %v", body)
	}

	if recorder := server.do(t, http.MethodGet, "/admin/api/stats", token, nil); recorder.Code != http.StatusOK {
		t.Fatalf("expected issued token to authorize admin api, got %d", recorder.Code)
	}
}
