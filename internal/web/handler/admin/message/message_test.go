package message

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/handlertest"
)

func TestDelete(t *testing.T) {
	env := handlertest.New(t)
	ctx := context.Background()

	var s Service
	s.Init(env.App, env.Content, env.Sessions)

	require.NoError(t, env.Content.SubmitMessage(ctx, "Ada", "ada@example.com", "hello"))

	messages, err := env.Content.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	path := "/delete_message/" + messages[0].ID

	// guarded
	resp := env.Do(t, httptest.NewRequest(fiber.MethodGet, path, nil), nil)
	assert.Equal(t, handler.LoginPath, resp.Header.Get(fiber.HeaderLocation))

	cookie := env.LoginCookie(t)

	resp = env.Do(t, httptest.NewRequest(fiber.MethodGet, path, nil), cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))

	messages, err = env.Content.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)

	resp = env.Do(t, httptest.NewRequest(fiber.MethodGet, path, nil), cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
