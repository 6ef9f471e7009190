package adminnotificationhdl

import (
	"github.com/gofiber/fiber/v3"
	adminnotificationsvc "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/service"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
)

// AdminNotificationHandler xử lý các route cảnh báo nội bộ; admin lấy từ X-User-ID
type AdminNotificationHandler struct {
	service *adminnotificationsvc.AdminNotificationService
}

// NewAdminNotificationHandler tạo handler
func NewAdminNotificationHandler(service *adminnotificationsvc.AdminNotificationService) *AdminNotificationHandler {
	return &AdminNotificationHandler{service: service}
}

// HandleList danh sách cảnh báo của admin (?unread=true chỉ lấy chưa đọc)
// @Router /admin/notifications [get]
func (h *AdminNotificationHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		adminID, err := middleware.GetUserID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit := basehdl.ParsePagination(c)
		unreadOnly := c.Query("unread") == "true"
		result, err := h.service.ListForAdmin(middleware.RequestContext(c), adminID, unreadOnly, page, limit)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleMarkRead đánh dấu một cảnh báo đã đọc
// @Router /admin/notifications/{id}/read [put]
func (h *AdminNotificationHandler) HandleMarkRead(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		adminID, err := middleware.GetUserID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		n, err := h.service.MarkRead(middleware.RequestContext(c), adminID, id)
		return basehdl.HandleResponse(c, n, err)
	})
}

// HandleMarkAllRead đánh dấu tất cả cảnh báo của admin đã đọc
// @Router /admin/notifications/read-all [put]
func (h *AdminNotificationHandler) HandleMarkAllRead(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		adminID, err := middleware.GetUserID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		count, err := h.service.MarkAllRead(middleware.RequestContext(c), adminID)
		return basehdl.HandleResponse(c, fiber.Map{"updated": count}, err)
	})
}
