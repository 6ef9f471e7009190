package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
)

// Pinger kiểm tra kết nối tới một dependency (Mongo, Redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapter cho hàm ping
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type SystemHandler struct {
	db    Pinger
	cache Pinger // nil khi không cấu hình Redis
}

// NewSystemHandler db bắt buộc cho health check; cache có thể nil
func NewSystemHandler(db, cache Pinger) *SystemHandler {
	return &SystemHandler{db: db, cache: cache}
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "error"
	}
	return "ok"
}

// HandleHealth Mongo lỗi -> 503. Redis chỉ là cache nên lỗi Redis vẫn trả 200
// @Router /system/health [get]
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok", "database": probe(ctx, h.db), "cache": probe(ctx, h.cache)}
	data := fiber.Map{"timestamp": time.Now().Format(time.RFC3339), "services": services, "status": "healthy"}

	if services["database"] != "ok" {
		data["status"] = "degraded"
		body := envelope(common.StatusServiceUnavailable, "Hệ thống đang gặp sự cố", "error")
		body["data"] = data
		return JSONResponse(c, common.StatusServiceUnavailable, body)
	}
	return HandleResponse(c, data, nil)
}
