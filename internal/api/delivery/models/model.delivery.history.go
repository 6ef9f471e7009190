// Package models - DeliveryHistory thuộc domain Delivery.
package models

import (
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một lần gửi thông báo cho khách
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped" // Tenant tắt thông báo
)

// DeliveryHistory - lịch sử gửi thông báo vòng đời đơn hàng cho khách (audit cho operator)
type DeliveryHistory struct {
	ID         primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID   primitive.ObjectID    `json:"tenantId" bson:"tenantId" index:"single:1"`
	OrderID    primitive.ObjectID    `json:"orderId" bson:"orderId" index:"single:1"`
	DispatchID string                `json:"dispatchId" bson:"dispatchId" index:"single:1"`
	Scenario   notification.Scenario `json:"scenario" bson:"scenario"`
	Channel    notification.Channel  `json:"channel" bson:"channel"`
	Method     notification.Method   `json:"method" bson:"method"` // notificationMethod ghi lên đơn sau lần gửi này
	Recipient  string                `json:"recipient,omitempty" bson:"recipient,omitempty"`
	Status     string                `json:"status" bson:"status" index:"single:1"` // sent, failed, skipped
	Error      string                `json:"error,omitempty" bson:"error,omitempty"`
	Manual     bool                  `json:"manual" bson:"manual"`
	CreatedAt  int64                 `json:"createdAt" bson:"createdAt" index:"single:-1"`
}
