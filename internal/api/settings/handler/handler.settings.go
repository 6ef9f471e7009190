package settingshdl

import (
	"github.com/gofiber/fiber/v3"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/dto"
	settingssvc "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/service"
)

// SettingsHandler xử lý các route settings của tenant
type SettingsHandler struct {
	service *settingssvc.SettingsService
}

// NewSettingsHandler tạo handler
func NewSettingsHandler(service *settingssvc.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// HandleGet trả settings của tenant hiện tại (mặc định nếu chưa cấu hình)
// @Router /settings [get]
func (h *SettingsHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		settings, err := h.service.GetSettingsForTenant(middleware.RequestContext(c), tenantID)
		return basehdl.HandleResponse(c, settings, err)
	})
}

// HandleUpdate cập nhật settings của tenant hiện tại
// @Router /settings [put]
func (h *SettingsHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.SettingsUpdateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		settings, err := h.service.UpdateSettings(middleware.RequestContext(c), tenantID, &input)
		return basehdl.HandleResponse(c, settings, err)
	})
}
