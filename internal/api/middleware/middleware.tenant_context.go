package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	localTenantID = "tenant_id"
	localUserID   = "user_id"
)

// TenantContextMiddleware đọc X-Tenant-ID và X-User-ID từ header, lưu ObjectID hợp lệ vào Locals.
// Xác thực nằm ở gateway phía trước nên middleware chỉ parse, không kiểm tra quyền
func TenantContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if id, err := primitive.ObjectIDFromHex(c.Get("X-Tenant-ID")); err == nil {
			c.Locals(localTenantID, id)
		}
		if id, err := primitive.ObjectIDFromHex(c.Get("X-User-ID")); err == nil {
			c.Locals(localUserID, id)
		}
		return c.Next()
	}
}

// GetTenantID lấy tenant ID đã parse, lỗi khi thiếu header
func GetTenantID(c fiber.Ctx) (primitive.ObjectID, error) {
	if id, ok := c.Locals(localTenantID).(primitive.ObjectID); ok && !id.IsZero() {
		return id, nil
	}
	return primitive.NilObjectID, common.ErrMissingTenant
}

// GetUserID lấy user ID đã parse, lỗi khi thiếu header
func GetUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	if id, ok := c.Locals(localUserID).(primitive.ObjectID); ok && !id.IsZero() {
		return id, nil
	}
	return primitive.NilObjectID, common.ErrMissingUser
}

// RequestContext dựng context cho service kèm correlation fields (request id, tenant, user) cho logger
func RequestContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if rid := requestid.FromContext(c); rid != "" {
		ctx = logger.ContextWith(ctx, logger.RequestIDKey, rid)
	}
	if id, err := GetTenantID(c); err == nil {
		ctx = logger.ContextWith(ctx, logger.TenantIDKey, id.Hex())
	}
	if id, err := GetUserID(c); err == nil {
		ctx = logger.ContextWith(ctx, logger.UserIDKey, id.Hex())
	}
	return ctx
}
