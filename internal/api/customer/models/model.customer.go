package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer khách hàng của tiệm giặt. Phone là khóa liên hệ chính, email tùy chọn
type Customer struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID  primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:tenant_phone"`
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone" bson:"phone" index:"compound:tenant_phone"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// HasPhone khách có số điện thoại
func (c *Customer) HasPhone() bool {
	return c != nil && strings.TrimSpace(c.Phone) != ""
}

// HasEmail khách có email
func (c *Customer) HasEmail() bool {
	return c != nil && strings.TrimSpace(c.Email) != ""
}

// HasContact khách có ít nhất một cách liên hệ
func (c *Customer) HasContact() bool {
	return c.HasPhone() || c.HasEmail()
}
