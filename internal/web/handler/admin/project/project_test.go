package project

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/handlertest"
)

func newEnv(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	var s Service
	s.Init(env.App, env.Cfg, env.Content, env.Sessions)

	return env
}

func TestRoutes_RequireLogin(t *testing.T) {
	env := newEnv(t)

	resp := env.Do(t, httptest.NewRequest(fiber.MethodGet, AddPath, nil), nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = env.Do(t, handlertest.MultipartRequest(t, AddPath, map[string]string{"title": "x"},
		handlertest.Part{Field: "image", Filename: "x.png", Content: "png"}), nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.LoginPath, resp.Header.Get(fiber.HeaderLocation))
	assert.Empty(t, env.Host.Uploads())

	resp = env.Do(t, httptest.NewRequest(fiber.MethodGet, "/delete/abc", nil), nil)
	assert.Equal(t, handler.LoginPath, resp.Header.Get(fiber.HeaderLocation))
}

func TestGet(t *testing.T) {
	env := newEnv(t)

	resp := env.Do(t, httptest.NewRequest(fiber.MethodGet, AddPath, nil), env.LoginCookie(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, handlertest.Body(t, resp))
}

func TestPost(t *testing.T) {
	testCases := []struct {
		name        string
		parts       []handlertest.Part
		wantStatus  int
		wantProject bool
	}{
		{
			name:        "with image",
			parts:       []handlertest.Part{{Field: "image", Filename: "shot.png", Content: "png"}},
			wantStatus:  fiber.StatusFound,
			wantProject: true,
		},
		{
			name:       "without image",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "empty image part",
			parts:      []handlertest.Part{{Field: "image", Filename: "empty.png"}},
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newEnv(t)

			req := handlertest.MultipartRequest(t, AddPath,
				map[string]string{"title": "Folio", "description": "portfolio"}, tc.parts...)

			resp := env.Do(t, req, env.LoginCookie(t))
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			projects, err := env.Content.ListProjects(context.Background())
			require.NoError(t, err)

			if !tc.wantProject {
				assert.Empty(t, projects)
				assert.Empty(t, env.Host.Uploads())
				return
			}

			assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))
			require.Len(t, projects, 1)
			assert.Equal(t, "Folio", projects[0].Title)
			assert.True(t, strings.HasPrefix(projects[0].ImageURL, "https://"))
		})
	}
}

func TestPost_UploadFailure(t *testing.T) {
	env := newEnv(t)
	env.Host.UploadErr = func(*asset.File, asset.Kind) error { return asset.ErrUpload }

	req := handlertest.MultipartRequest(t, AddPath, map[string]string{"title": "Folio"},
		handlertest.Part{Field: "image", Filename: "shot.png", Content: "png"})

	resp := env.Do(t, req, env.LoginCookie(t))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	projects, err := env.Content.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestDelete(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	project, err := env.Content.AddProject(ctx, "Folio", "", &asset.File{
		Filename: "shot.png",
		Content:  strings.NewReader("png"),
	})
	require.NoError(t, err)

	cookie := env.LoginCookie(t)

	resp := env.Do(t, httptest.NewRequest(fiber.MethodGet, "/delete/"+project.ID, nil), cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))

	projects, err := env.Content.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Len(t, env.Host.Destroyed(), 1)

	resp = env.Do(t, httptest.NewRequest(fiber.MethodGet, "/delete/"+project.ID, nil), cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
