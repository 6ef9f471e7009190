package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
	// TenantIDKey là key cho tenant ID trong context
	TenantIDKey ContextKey = "tenantID"
	// UserIDKey là key cho user ID trong context
	UserIDKey ContextKey = "userID"
	// OrderIDKey là key cho order ID đang được xử lý
	OrderIDKey ContextKey = "orderID"
	// DispatchIDKey là correlation id của một lần gọi Dispatcher
	DispatchIDKey ContextKey = "dispatchID"
)

var contextFields = []struct {
	key   ContextKey
	field string
}{
	{RequestIDKey, "request_id"},
	{TenantIDKey, "tenant_id"},
	{UserIDKey, "user_id"},
	{OrderIDKey, "order_id"},
	{DispatchIDKey, "dispatch_id"},
}

// WithContext trả về logger entry kèm các correlation fields có trong context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if ctx == nil {
		return entry
	}
	for _, f := range contextFields {
		if v := ctx.Value(f.key); v != nil {
			entry = entry.WithField(f.field, v)
		}
	}
	return entry
}

// ContextWith gắn một correlation value vào context
func ContextWith(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithContext(context.Background())

	requestID := requestid.FromContext(c)
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	return entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
}

// WithModule trả về logger entry với module name (dispatch, overdue_scan, order, ...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
