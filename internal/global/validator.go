package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
	orderModels "github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("order_status", validateOrderStatus)
	_ = Validate.RegisterValidation("notification_channel", validateNotificationChannel)
	_ = Validate.RegisterValidation("discount_type", validateDiscountType)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateOrderStatus kiểm tra trạng thái đơn thuộc tập trạng thái hợp lệ
func validateOrderStatus(fl validator.FieldLevel) bool {
	return orderModels.OrderStatus(fl.Field().String()).IsValid()
}

// validateNotificationChannel kiểm tra kênh ưu tiên: whatsapp | email | none.
// Chuỗi rỗng hợp lệ (field optional, giữ nguyên giá trị cũ)
func validateNotificationChannel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return notification.Channel(value).IsPreference()
}

// validateDiscountType kiểm tra loại giảm giá: none | percentage | fixed
func validateDiscountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return orderModels.DiscountType(value).IsValid()
}

// validateNoXSS chặn các pattern script cơ bản trong text tự do (template, ghi chú)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"<iframe",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
