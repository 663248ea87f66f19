package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subfolio-dev/subfolio/db"
	"github.com/subfolio-dev/subfolio/internal/actions"
	"github.com/subfolio-dev/subfolio/internal/auth"
	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/config"
	"github.com/subfolio-dev/subfolio/internal/handlers"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/render"
	"github.com/subfolio-dev/subfolio/internal/router"
	"github.com/subfolio-dev/subfolio/internal/services"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	cache  *cache.RenderCache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.DB = conn

	require.NoError(t, auth.InitJWTSecret("test-secret"))

	cfg := config.Default()
	cfg.RootDomain = "example.com"

	renderer, err := render.NewRenderer(cfg.RootDomain, cfg.Protocol)
	require.NoError(t, err)

	logger := zap.NewNop()
	pageCache := cache.New(cfg.CacheTTL)
	hub := services.NewRefreshHub(logger)
	pageCache.OnRevalidate(hub.Broadcast)

	h := &handlers.Handler{
		DB:       conn,
		Actions:  actions.New(conn, actions.Options{Revalidator: pageCache, SiteURL: cfg.SiteURL, Logger: logger}),
		Renderer: renderer,
		Cache:    pageCache,
		Hub:      hub,
		Config:   cfg,
		Logger:   logger,
	}

	return &testServer{t: t, engine: router.NewRouter(h), cache: pageCache}
}

func (s *testServer) do(method, target, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) post(target, token string, form url.Values) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) page(target, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its session token.
func (s *testServer) register(email string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c.Value
		}
	}
	s.t.Fatal("no session cookie")
	return ""
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *testServer) createSite(token, name string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/subdomains", token, map[string]string{"subdomain": name})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(s.t, w)
	assert.Equal(s.t, "http://"+name+".example.com", body["redirect"])
	return body["id"].(string)
}

func profileBody() map[string]any {
	return map[string]any{
		"name":          "Ada Lovelace",
		"initials":      "AL",
		"url":           "https://ada.dev",
		"location":      "London",
		"location_link": "https://maps.example.com/london",
		"description":   "Analyst of engines and numbers.",
		"summary":       "Writes **programs** for engines.",
		"avatar":        "https://ada.dev/avatar.png",
		"skills":        []string{"Math"},
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register("ada@example.com")

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Again", "email": "ADA@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["error"])

	w = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])

	w = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMutationsRequireSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/subdomains", "", map[string]string{"subdomain": "ada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPut, "/api/subdomains/abc/profile", "", profileBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubdomainAPI(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("ada@example.com")
	eve := s.register("eve@example.com")

	siteID := s.createSite(ada, "ada")

	w := s.do(http.MethodPost, "/api/subdomains", eve, map[string]string{"subdomain": "ada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This subdomain is already taken", decode(t, w)["error"])

	w = s.do(http.MethodGet, "/api/subdomains", ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sites []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sites))
	require.Len(t, sites, 1)
	assert.Equal(t, siteID, sites[0]["id"])

	w = s.do(http.MethodGet, "/api/subdomains", eve, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(http.MethodDelete, "/api/sites/ada", ada, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Domain deleted successfully", decode(t, w)["success"])

	w = s.do(http.MethodDelete, "/api/sites/ada", ada, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioLifecycle(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("ada@example.com")
	eve := s.register("eve@example.com")
	siteID := s.createSite(ada, "ada")

	w := s.page("/s/ada", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/subdomains/"+siteID+"/profile", eve, profileBody())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Subdomain not found", decode(t, w)["error"])

	bad := profileBody()
	bad["avatar"] = "nope"
	w = s.do(http.MethodPut, "/api/subdomains/"+siteID+"/profile", ada, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid fields!", body["error"])
	assert.Contains(t, body["fields"], "avatar")

	w = s.do(http.MethodPut, "/api/subdomains/"+siteID+"/profile", ada, profileBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profileID := decode(t, w)["id"].(string)

	w = s.page("/s/ada", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Ada</h1>")
	assert.Equal(t, 1, s.cache.ItemCount())

	w = s.do(http.MethodPost, "/api/subdomains/"+siteID+"/works", ada, map[string]any{
		"profile_id":  profileID,
		"company":     "Analytical Engines",
		"href":        "https://engines.example.com",
		"location":    "London",
		"title":       "Programmer",
		"start":       "1842",
		"description": "Notes on the engine.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Work experience added!", decode(t, w)["success"])
	assert.Zero(t, s.cache.ItemCount())

	w = s.page("/s/ada", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1842 - Present")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "ada.example.com"
	hostResp := httptest.NewRecorder()
	s.engine.ServeHTTP(hostResp, req)
	assert.Equal(t, http.StatusOK, hostResp.Code)
	assert.Contains(t, hostResp.Body.String(), "Analytical Engines")

	w = s.do(http.MethodGet, "/api/sites/ada", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	site := decode(t, w)
	assert.Equal(t, "ada", site["name"])
	assert.NotContains(t, site, "user")
}

func TestUnknownHostRendersNotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "ghost.example.com"
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio not found")
}

func TestDashboardRedirects(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("ada@example.com")
	eve := s.register("eve@example.com")
	siteID := s.createSite(ada, "ada")

	w := s.page("/dashboard", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	w = s.page("/dashboard/"+siteID+"/profile", eve)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = s.page("/dashboard/"+siteID+"/work/missing", ada)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/"+siteID+"/work", w.Header().Get("Location"))

	w = s.page("/dashboard/"+siteID+"/work/new", ada)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add Work Experience")

	w = s.page("/dashboard", ada)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http://ada.example.com")
}

func TestDashboardForms(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("ada@example.com")
	siteID := s.createSite(ada, "ada")

	w := s.post("/dashboard/"+siteID+"/work/new", ada, url.Values{"company": {"Acme"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Please set up your profile first!")

	profile := url.Values{
		"name":          {"Ada Lovelace"},
		"initials":      {"AL"},
		"url":           {"https://ada.dev"},
		"location":      {"London"},
		"location_link": {"https://maps.example.com/london"},
		"description":   {"Analyst of engines and numbers."},
		"summary":       {"Writes programs for engines."},
		"avatar":        {"https://ada.dev/avatar.png"},
		"skills":        {"Math, Poetry"},
	}
	w = s.post("/dashboard/"+siteID+"/profile", ada, profile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Profile created!")
	assert.NotContains(t, w.Body.String(), "http-equiv=\"refresh\"")

	var stored models.Profile
	require.NoError(t, db.DB.Where("subdomain_id = ?", siteID).First(&stored).Error)

	work := url.Values{
		"profile_id":  {stored.ID},
		"company":     {"Analytical Engines"},
		"href":        {"https://engines.example.com"},
		"location":    {"London"},
		"title":       {"Programmer"},
		"start":       {"1842"},
		"description": {"Notes on the engine."},
	}
	w = s.post("/dashboard/"+siteID+"/work/new", ada, work)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Work experience added!")
	assert.Contains(t, w.Body.String(), "url=/dashboard/"+siteID+"/work")

	contact := url.Values{
		"profile_id":       {stored.ID},
		"email":            {"ada@example.com"},
		"social[0].name":   {"GitHub"},
		"social[0].url":    {"https://github.com/ada"},
		"social[0].icon":   {"github"},
		"social[0].navbar": {"true"},
		"social[1].name":   {""},
		"social[1].url":    {""},
		"social[1].icon":   {"globe"},
	}
	w = s.post("/dashboard/"+siteID+"/contacts", ada, contact)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Contact information updated!")

	var socials []models.Social
	require.NoError(t, db.DB.Find(&socials).Error)
	require.Len(t, socials, 1)
	assert.True(t, socials[0].Navbar)
}
