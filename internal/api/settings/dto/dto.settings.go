package dto

import (
	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
)

// SettingsUpdateInput dữ liệu cập nhật settings. Field nil/rỗng giữ nguyên giá trị cũ
type SettingsUpdateInput struct {
	CompanyInfo                  *models.CompanyInfo           `json:"companyInfo,omitempty"`
	NotificationTemplates        *models.NotificationTemplates `json:"notificationTemplates,omitempty"`
	DefaultCurrencySymbol        string                        `json:"defaultCurrencySymbol,omitempty" validate:"omitempty,max=8"`
	PreferredNotificationChannel string                        `json:"preferredNotificationChannel,omitempty" validate:"notification_channel"`
}
