package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contosparadormir/contos/internal/admin"
	"github.com/contosparadormir/contos/internal/music"
	"github.com/contosparadormir/contos/internal/sessions"
	"github.com/contosparadormir/contos/internal/siteconfig"
	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/story"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testPassword   = "letmein"
	testCookieName = "sid"
)

type testEnv struct {
	router   *gin.Engine
	store    store.Store
	sessions *sessions.MemoryRepository
}

// newTestEnv builds the API over st (a fresh memory store when nil), with
// mws installed in front of the routes.
func newTestEnv(t *testing.T, st store.Store, mws ...gin.HandlerFunc) *testEnv {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	repo := sessions.NewMemoryRepository()
	gate := admin.NewGate(admin.NewSecret(testPassword, ""), sessions.NewService(repo, time.Hour), "cookie-secret")

	r := gin.New()
	r.Use(mws...)
	RegisterAPI(r, API{
		Gate:       gate,
		Cookie:     CookieConfig{Name: testCookieName, MaxAge: time.Hour},
		Stories:    story.NewService(st),
		Music:      music.NewService(st),
		SiteConfig: siteconfig.NewService(st),
	})
	return &testEnv{router: r, store: st, sessions: repo}
}

// do sends a request, attaching cookie when non-nil. body is JSON-encoded
// unless it is already a string.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/admin", map[string]string{"password": testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	c := sessionCookie(w)
	require.NotNil(t, c)
	return c
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
