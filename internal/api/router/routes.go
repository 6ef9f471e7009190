package router

import (
	"github.com/gofiber/fiber/v3"

	adminnotificationhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/handler"
	authhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/auth/handler"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	customerhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/handler"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
	orderhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/order/handler"
	settingshdl "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/handler"
)

// Handlers tập handler đã khởi tạo, truyền vào SetupRoutes
type Handlers struct {
	System            *basehdl.SystemHandler
	Users             *authhdl.UserHandler
	Customers         *customerhdl.CustomerHandler
	Orders            *orderhdl.OrderHandler
	Settings          *settingshdl.SettingsHandler
	AdminNotification *adminnotificationhdl.AdminNotificationHandler
}

// SetupRoutes đăng ký toàn bộ route dưới /api/v1.
// Middleware đăng ký bằng Use() trên group, không truyền trực tiếp vào từng route
func SetupRoutes(app *fiber.App, h Handlers) {
	v1 := app.Group("/api/v1")
	v1.Use(middleware.TenantContextMiddleware())

	// System
	v1.Get("/system/health", h.System.HandleHealth)

	// Users (danh bạ admin/staff)
	v1.Post("/users", h.Users.HandleCreate)

	// Customers
	v1.Post("/customers", h.Customers.HandleCreate)
	v1.Get("/customers/:id", h.Customers.HandleGet)

	// Orders
	v1.Post("/orders", h.Orders.HandleCreate)
	v1.Get("/orders/:id", h.Orders.HandleGet)
	v1.Put("/orders/:id/status", h.Orders.HandleUpdateStatus)
	v1.Post("/orders/:id/payments", h.Orders.HandleRecordPayment)
	v1.Post("/orders/:id/notify", h.Orders.HandleNotify)
	v1.Get("/orders/:id/deliveries", h.Orders.HandleListDeliveries)

	// Settings
	v1.Get("/settings", h.Settings.HandleGet)
	v1.Put("/settings", h.Settings.HandleUpdate)

	// Admin notifications; read-all phải đăng ký trước /:id/read
	v1.Get("/admin/notifications", h.AdminNotification.HandleList)
	v1.Put("/admin/notifications/read-all", h.AdminNotification.HandleMarkAllRead)
	v1.Put("/admin/notifications/:id/read", h.AdminNotification.HandleMarkRead)
}
