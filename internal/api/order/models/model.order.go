package models

import (
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus trạng thái vòng đời đơn hàng
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusProcessing     OrderStatus = "Processing"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
	StatusCompleted      OrderStatus = "Completed"
	StatusCancelled      OrderStatus = "Cancelled"
)

// ClosedStatuses trạng thái kết thúc, không còn bị quét quá hạn
var ClosedStatuses = []OrderStatus{StatusCompleted, StatusCancelled}

// allowedTransitions các chuyển trạng thái hợp lệ; Completed và Cancelled là trạng thái cuối
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusProcessing, StatusReadyForPickup, StatusCancelled},
	StatusProcessing:     {StatusReadyForPickup, StatusCancelled, StatusPending},
	StatusReadyForPickup: {StatusCompleted, StatusProcessing, StatusCancelled},
}

// IsValid kiểm tra status thuộc tập giá trị hợp lệ
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReadyForPickup, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsClosed đơn đã hoàn tất hoặc đã hủy
func (s OrderStatus) IsClosed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo kiểm tra chuyển trạng thái s -> next có hợp lệ
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DiscountType loại giảm giá
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid kiểm tra loại giảm giá
func (d DiscountType) IsValid() bool {
	return d == DiscountNone || d == DiscountPercentage || d == DiscountFixed
}

// Discount giảm giá của đơn. Amount luôn được tính lại từ Type/Value
type Discount struct {
	Type   DiscountType `json:"type" bson:"type"`
	Value  float64      `json:"value" bson:"value"`
	Amount float64      `json:"amount" bson:"amount"`
}

// OrderItem một món đồ trong đơn
type OrderItem struct {
	Name      string  `json:"name" bson:"name"`
	Service   string  `json:"service" bson:"service"` // giặt khô, ủi, ...
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
}

// Order đơn hàng giặt/ủi. Timestamp dùng Unix milli
type Order struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID      primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:tenant_status"`
	CustomerID    primitive.ObjectID `json:"customerId" bson:"customerId" index:"single:1"`
	ReceiptNumber string             `json:"receiptNumber" bson:"receiptNumber" index:"unique"`
	Items         []OrderItem        `json:"items" bson:"items"`

	// Tài chính, luôn suy ra từ Subtotal/Discount/AmountPaid qua ApplyFinancials
	Subtotal    float64  `json:"subtotal" bson:"subtotal"`
	Discount    Discount `json:"discount" bson:"discount"`
	TotalAmount float64  `json:"totalAmount" bson:"totalAmount"`
	AmountPaid  float64  `json:"amountPaid" bson:"amountPaid"`
	IsFullyPaid bool     `json:"isFullyPaid" bson:"isFullyPaid"`

	Status           OrderStatus `json:"status" bson:"status" index:"compound:tenant_status"`
	ExpectedPickupAt int64       `json:"expectedPickupAt" bson:"expectedPickupAt" index:"single:1"`
	ActualPickupAt   int64       `json:"actualPickupAt,omitempty" bson:"actualPickupAt,omitempty"`

	// Trạng thái thông báo cho khách
	Notified           bool                `json:"notified" bson:"notified"`
	NotificationMethod notification.Method `json:"notificationMethod" bson:"notificationMethod"`

	// Cờ đã cảnh báo admin
	AdminNotifiedImpendingOverdue bool `json:"adminNotifiedImpendingOverdue" bson:"adminNotifiedImpendingOverdue"`
	AdminNotifiedActualOverdue    bool `json:"adminNotifiedActualOverdue" bson:"adminNotifiedActualOverdue"`

	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}

// Counter bộ đếm số thứ tự biên nhận theo ngày (_id = "receipt:YYYYMMDD")
type Counter struct {
	ID  string `json:"id" bson:"_id"`
	Seq int64  `json:"seq" bson:"seq"`
}
