package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/auth/dto"
	authsvc "github.com/ndip23/pressing-management-system-sub000/internal/api/auth/service"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
)

// UserHandler xử lý các route người dùng
type UserHandler struct {
	service *authsvc.UserService
}

// NewUserHandler tạo handler
func NewUserHandler(service *authsvc.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// HandleCreate tạo người dùng (admin/staff) cho tenant
// @Router /users [post]
func (h *UserHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.UserCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		user, err := h.service.Create(middleware.RequestContext(c), tenantID, &input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleCreated(c, user)
	})
}
