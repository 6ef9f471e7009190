// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vai trò của người dùng trong tenant
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User operator hoặc admin của một tiệm. Đăng nhập do gateway phía trước xử lý,
// service chỉ dùng User làm danh bạ để gửi cảnh báo nội bộ
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID  primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:tenant_role"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Role      string             `json:"role" bson:"role" index:"compound:tenant_role"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
