// Package models - AdminNotification: cảnh báo nội bộ cho admin của tiệm.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminNotification cảnh báo nội bộ gửi tới một admin (overdue_warning, overdue_alert, new_order...).
// Chỉ scanner tạo; admin UI đánh dấu đã đọc
type AdminNotification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID  primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1"`
	AdminID   primitive.ObjectID `json:"adminId" bson:"adminId" index:"compound:admin_inbox;compound:admin_order_type"`
	Type      string             `json:"type" bson:"type" index:"compound:admin_order_type"`
	Message   string             `json:"message" bson:"message"`
	Link      string             `json:"link,omitempty" bson:"link,omitempty"`
	OrderID   primitive.ObjectID `json:"orderId,omitempty" bson:"orderId,omitempty" index:"compound:admin_order_type"`
	Read      bool               `json:"read" bson:"read" index:"compound:admin_inbox;compound:admin_order_type"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"compound:admin_inbox,order:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
