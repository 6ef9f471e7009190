package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/router"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
)

const healthPath = "/api/v1/system/health"

// InitFiberApp dựng Fiber app: requestid -> cors -> security headers -> limiter -> recover -> routes
func InitFiberApp(handlers router.Handlers) *fiber.App {
	cfg := global.MongoDB_ServerConfig

	app := fiber.New(fiber.Config{
		AppName:       "Pressing API",
		StrictRouting: true,
		CaseSensitive: true,
		BodyLimit:     2 * 1024 * 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  60 * time.Second, // Đổi trạng thái Ready chờ provider gửi xong
		IdleTimeout:   120 * time.Second,
		ErrorHandler:  errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Header: "X-Request-ID"}))
	app.Use(corsMiddleware(cfg))
	app.Use(securityHeaders)
	if mw := rateLimiter(cfg); mw != nil {
		app.Use(mw)
	}
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprint(e)).Error("🔥 [HTTP] Panic recovered")
		},
	}))

	router.SetupRoutes(app, handlers)
	return app
}

// errorHandler render lỗi lọt ra khỏi handler (route không tồn tại, body quá lớn...) theo envelope chung
func errorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	errorCode := common.ErrCodeInternalServer.Code
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status, message = fe.Code, fe.Message
		switch status {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuth.Code
		case fiber.StatusNotFound, fiber.StatusConflict:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	logger.WithRequest(c).WithField("status", status).WithError(err).Warn("🌐 [HTTP] Request lỗi")
	return c.Status(status).JSON(fiber.Map{"code": errorCode, "message": message, "status": "error"})
}

func corsMiddleware(cfg *config.Configuration) fiber.Handler {
	origins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		origins = origins[:0]
		for _, o := range strings.Split(cfg.CORS_Origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Tenant-ID", "X-User-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	})
}

func securityHeaders(c fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	return c.Next()
}

// rateLimiter giới hạn theo IP; nil khi tắt
func rateLimiter(cfg *config.Configuration) fiber.Handler {
	log := logger.GetAppLogger()
	if !cfg.RateLimit_Enabled || cfg.RateLimit_Max <= 0 {
		log.Info("🌐 [HTTP] Rate limiting tắt")
		return nil
	}
	log.WithField("max", cfg.RateLimit_Max).WithField("windowSec", cfg.RateLimit_Window).Info("🌐 [HTTP] Rate limiting bật")

	return limiter.New(limiter.Config{
		Max:          cfg.RateLimit_Max,
		Expiration:   time.Duration(cfg.RateLimit_Window) * time.Second,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		Next: func(c fiber.Ctx) bool {
			return c.Path() == healthPath || c.Method() == fiber.MethodOptions
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    common.ErrCodeBusinessOperation.Code,
				"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
				"status":  "error",
			})
		},
	})
}
