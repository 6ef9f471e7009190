package orderhdl

import (
	"github.com/gofiber/fiber/v3"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	deliverysvc "github.com/ndip23/pressing-management-system-sub000/internal/api/delivery/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/middleware"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	ordersvc "github.com/ndip23/pressing-management-system-sub000/internal/api/order/service"
)

// OrderHandler xử lý các route đơn hàng
type OrderHandler struct {
	service  *ordersvc.OrderService
	delivery *deliverysvc.DeliveryHistoryService
}

// NewOrderHandler tạo handler
func NewOrderHandler(service *ordersvc.OrderService, delivery *deliverysvc.DeliveryHistoryService) *OrderHandler {
	return &OrderHandler{service: service, delivery: delivery}
}

// HandleCreate tạo đơn hàng mới
// @Router /orders [post]
func (h *OrderHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.OrderCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		order, err := h.service.Create(middleware.RequestContext(c), tenantID, &input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleCreated(c, order)
	})
}

// HandleGet lấy đơn theo id
// @Router /orders/{id} [get]
func (h *OrderHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		order, err := h.service.Get(middleware.RequestContext(c), tenantID, id)
		return basehdl.HandleResponse(c, order, err)
	})
}

// HandleUpdateStatus đổi trạng thái đơn; chuyển sang Ready for Pickup sẽ tự gửi thông báo cho khách
// @Router /orders/{id}/status [put]
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.OrderStatusUpdateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		order, err := h.service.UpdateStatus(middleware.RequestContext(c), tenantID, id, models.OrderStatus(input.Status))
		return basehdl.HandleResponse(c, order, err)
	})
}

// HandleRecordPayment ghi nhận thanh toán
// @Router /orders/{id}/payments [post]
func (h *OrderHandler) HandleRecordPayment(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.OrderPaymentInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		order, err := h.service.RecordPayment(middleware.RequestContext(c), tenantID, id, input.Amount)
		return basehdl.HandleResponse(c, order, err)
	})
}

// HandleNotify nhắc khách thủ công. Body là tùy chọn
// @Router /orders/{id}/notify [post]
func (h *OrderHandler) HandleNotify(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.OrderNotifyInput
		if len(c.Body()) > 0 {
			if err := basehdl.ParseBody(c, &input); err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
		}
		var extra map[string]interface{}
		if len(input.Variables) > 0 {
			extra = make(map[string]interface{}, len(input.Variables))
			for k, v := range input.Variables {
				extra[k] = v
			}
		}
		order, err := h.service.NotifyManually(middleware.RequestContext(c), tenantID, id, extra)
		return basehdl.HandleResponse(c, order, err)
	})
}

// HandleListDeliveries lịch sử gửi thông báo của đơn
// @Router /orders/{id}/deliveries [get]
func (h *OrderHandler) HandleListDeliveries(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.ParseObjectID(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		history, err := h.delivery.ListForOrder(middleware.RequestContext(c), tenantID, id)
		return basehdl.HandleResponse(c, history, err)
	})
}
