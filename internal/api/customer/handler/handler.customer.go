package customerhdl

import (
	"github.com/gofiber/fiber/v3"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/customer/dto"
	customersvc "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
)

// CustomerHandler xử lý các route khách hàng
type CustomerHandler struct {
	service *customersvc.CustomerService
}

// NewCustomerHandler tạo handler
func NewCustomerHandler(service *customersvc.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// HandleCreate tạo khách hàng
// @Router /customers [post]
func (h *CustomerHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.CustomerCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		customer, err := h.service.Create(middleware.RequestContext(c), tenantID, &input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleCreated(c, customer)
	})
}

// HandleGet lấy khách hàng theo id
// @Router /customers/{id} [get]
func (h *CustomerHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		customer, err := h.service.GetForTenant(middleware.RequestContext(c), tenantID, id)
		return basehdl.HandleResponse(c, customer, err)
	})
}
