package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTenantContextMiddleware(t *testing.T) {
	tenant := primitive.NewObjectID()
	user := primitive.NewObjectID()

	var gotTenant, gotUser error
	var ctxTenant interface{}
	app := fiber.New()
	app.Use(TenantContextMiddleware())
	app.Get("/", func(c fiber.Ctx) error {
		_, gotTenant = GetTenantID(c)
		_, gotUser = GetUserID(c)
		ctxTenant = RequestContext(c).Value(logger.TenantIDKey)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Tenant-ID", tenant.Hex())
	req.Header.Set("X-User-ID", "not-an-object-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.NoError(t, gotTenant)
	assert.Equal(t, tenant.Hex(), ctxTenant)
	assert.True(t, errors.Is(gotUser, common.ErrMissingUser), "user id sai định dạng coi như thiếu")

	req = httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", user.Hex())
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.True(t, errors.Is(gotTenant, common.ErrMissingTenant))
	assert.NoError(t, gotUser)
}
