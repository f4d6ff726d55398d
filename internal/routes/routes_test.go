package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/config"
	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/database"
	"github.com/zaqqye/agency_backend/internal/ws"
)

type testServer struct {
	*httptest.Server
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DBDriver:      "sqlite",
		SQLitePath:    "file::memory:",
		JWTSecret:     "routes-secret",
		JWTExpiresIn:  "5",
		AdminEmail:    "admin@agency.test",
		AdminPassword: "admin-pass",
		CORSOrigins:   []string{"https://agency.test"},
	}
	logger := zap.NewNop()
	db, err := database.Connect(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedAdmin(db, cfg, logger))

	hubs := ws.NewHubs(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hubs.Preview.Run(ctx)

	srv := httptest.NewServer(NewEngine(Deps{
		DB:      db,
		Cfg:     cfg,
		Content: content.NewService(content.NewSQLStore(db)),
		Hubs:    hubs,
		Logger:  logger,
	}))
	t.Cleanup(srv.Close)

	ts := &testServer{Server: srv}
	resp := ts.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@agency.test","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	ts.token = body["access_token"].(string)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCMSWriteRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/cms", `{"section":"about","title":"x"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/cms", `{"section":"about","title":"x"}`, "Authorization", "Bearer "+ts.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/cms?section=about", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "x", doc["title"])
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/api/v1/admin/blog", "/api/v1/admin/team", "/api/v1/admin/pricing", "/api/v1/admin/contacts"} {
		resp := ts.do(t, http.MethodGet, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp = ts.do(t, http.MethodGet, path, "", "Authorization", "Bearer "+ts.token)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodOptions, "/api/v1/cms", "", "Origin", "https://agency.test")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://agency.test", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = ts.do(t, http.MethodGet, "/healthz", "", "Origin", "https://evil.test")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLivePreviewReceivesSavedSection(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/admin/cms/live?sections=footer&access_token=" + ts.token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	time.Sleep(100 * time.Millisecond)

	resp := ts.do(t, http.MethodPost, "/api/v1/cms", `{"section":"footer","footerText":"Live!"}`, "Authorization", "Bearer "+ts.token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev ws.SectionEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "section_updated", ev.Type)
	assert.Equal(t, "footer", ev.Section)
	assert.Equal(t, "Live!", ev.Fields["footerText"])
}

func TestLivePreviewRejectsAnonymous(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/admin/cms/live"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
