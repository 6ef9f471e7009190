package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okPing(context.Context) error   { return nil }
func downPing(context.Context) error { return errors.New("down") }

func callJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleHealth(t *testing.T) {
	cases := []struct {
		name       string
		db, cache  Pinger
		wantStatus int
		wantCache  string
	}{
		{"all ok", PingerFunc(okPing), PingerFunc(okPing), 200, "ok"},
		{"cache disabled", PingerFunc(okPing), nil, 200, "disabled"},
		{"cache down vẫn 200", PingerFunc(okPing), PingerFunc(downPing), 200, "error"},
		{"mongo down", PingerFunc(downPing), nil, 503, "disabled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewSystemHandler(tc.db, tc.cache).HandleHealth)

			status, body := callJSON(t, app, "/health")
			assert.Equal(t, tc.wantStatus, status)
			services := body["data"].(map[string]interface{})["services"].(map[string]interface{})
			assert.Equal(t, tc.wantCache, services["cache"])
		})
	}
}

func TestHandleResponse_ErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/nf", func(c fiber.Ctx) error { return HandleResponse(c, nil, common.ErrNotFound) })
	app.Get("/raw", func(c fiber.Ctx) error { return HandleResponse(c, nil, errors.New("boom")) })
	app.Get("/panic", func(c fiber.Ctx) error {
		return SafeHandler(c, func() error { panic("oops") })
	})

	status, body := callJSON(t, app, "/nf")
	assert.Equal(t, 404, status)
	assert.Equal(t, "DB_002", body["code"])
	assert.Equal(t, "error", body["status"])

	status, body = callJSON(t, app, "/raw")
	assert.Equal(t, 500, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])

	status, body = callJSON(t, app, "/panic")
	assert.Equal(t, 500, status)
	assert.Contains(t, body["message"], "oops")
}
