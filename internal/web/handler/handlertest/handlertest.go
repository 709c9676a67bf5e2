// Package handlertest wires handlers to an in-memory store, a recording asset
// host and a no-op view engine for tests.
package handlertest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/asset/assettest"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/gormstore"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// Admin credentials the test gate accepts.
const (
	Username = "admin"
	Password = "changeme"
)

const loginNowPath = "/__test/login"

// Views is a minimal Fiber Views engine. It writes the "error" field of the
// binding when present, the template name otherwise, and remembers the last
// render for assertions.
type Views struct {
	mu   sync.Mutex
	name string
	data fiber.Map
}

// Load implements fiber.Views.
func (*Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, _ := data.(fiber.Map)

	v.mu.Lock()
	v.name, v.data = name, m
	v.mu.Unlock()

	if e, ok := m["error"].(string); ok && e != "" {
		_, _ = io.WriteString(w, e)
		return nil
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// Last returns the most recent template name and binding.
func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.data
}

// Env is a wired test environment.
type Env struct {
	App      *fiber.App
	Views    *Views
	Cfg      *config.Config
	Content  *content.Service
	Host     *assettest.Host
	Sessions *session.Manager
	Gate     *auth.Gate
}

// New builds an Env. Handlers still need to be registered on Env.App.
func New(t *testing.T) *Env {
	t.Helper()

	store, err := gormstore.New(dbtest.Open(t))
	require.NoError(t, err)

	gate, err := auth.NewGate(config.Admin{Username: Username, Password: Password})
	require.NoError(t, err)

	cfg := &config.Config{
		Title:   "Folio",
		Tagline: "test",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: config.Duration{Duration: time.Minute}},
		},
	}

	host := &assettest.Host{}
	views := &Views{}
	sessions := session.New(session.Config{Expiration: time.Minute})

	app := fiber.New(fiber.Config{
		Views:             views,
		ErrorHandler:      handler.ErrorHandler,
		PassLocalsToViews: true,
	})
	app.Use(authmiddleware.Identify(sessions))
	app.Get(loginNowPath, func(c *fiber.Ctx) error { return sessions.Login(c) })

	return &Env{
		App:      app,
		Views:    views,
		Cfg:      cfg,
		Content:  content.New(store, host),
		Host:     host,
		Sessions: sessions,
		Gate:     gate,
	}
}

// LoginCookie returns a cookie holding an authenticated session.
func (e *Env) LoginCookie(t *testing.T) *http.Cookie {
	t.Helper()

	resp := e.Do(t, httptest.NewRequest(fiber.MethodGet, loginNowPath, nil), nil)

	cookie := SessionCookie(resp)
	require.NotNil(t, cookie, "no session cookie issued")

	return cookie
}

// Do runs req through the app with an optional cookie.
func (e *Env) Do(t *testing.T, req *http.Request, cookie *http.Cookie) *http.Response {
	t.Helper()

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// Body reads the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

// SessionCookie picks the session cookie from a response.
func SessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}

	return nil
}

// FormRequest builds an url-encoded POST request.
func FormRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return req
}

// Part is one file of a multipart request.
type Part struct {
	Field    string
	Filename string
	Content  string
}

// MultipartRequest builds a multipart POST request from fields and file parts.
func MultipartRequest(t *testing.T, path string, fields map[string]string, parts ...Part) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	for _, p := range parts {
		fw, err := w.CreateFormFile(p.Field, p.Filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, p.Content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return req
}
