package models

import (
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Giá trị mặc định khi tenant chưa có document settings
const (
	DefaultCompanyName    = "Our Pressing"
	DefaultCurrencySymbol = "$"
)

// CompanyInfo thông tin hiển thị của tiệm giặt trong thông báo gửi khách
type CompanyInfo struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	LogoURL string `json:"logoUrl" bson:"logoUrl"`
}

// ScenarioTemplate template của một scenario: email subject/body và Twilio Content SID cho WhatsApp
type ScenarioTemplate struct {
	EmailSubject       string `json:"emailSubject" bson:"emailSubject"`
	EmailBody          string `json:"emailBody" bson:"emailBody"`
	WhatsAppContentSID string `json:"whatsappContentSid" bson:"whatsappContentSid"`
}

// NotificationTemplates template theo từng scenario
type NotificationTemplates struct {
	ReadyForPickup ScenarioTemplate `json:"readyForPickup" bson:"readyForPickup"`
	ManualReminder ScenarioTemplate `json:"manualReminder" bson:"manualReminder"`
}

// For trả về template của scenario (zero value nếu scenario không hỗ trợ)
func (t NotificationTemplates) For(scenario notification.Scenario) ScenarioTemplate {
	switch scenario {
	case notification.ScenarioReadyForPickup:
		return t.ReadyForPickup
	case notification.ScenarioManualReminder:
		return t.ManualReminder
	}
	return ScenarioTemplate{}
}

// Settings cấu hình của một tenant (mỗi tenant một document)
type Settings struct {
	ID                           primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	TenantID                     primitive.ObjectID    `json:"tenantId" bson:"tenantId" index:"unique"`
	CompanyInfo                  CompanyInfo           `json:"companyInfo" bson:"companyInfo"`
	NotificationTemplates        NotificationTemplates `json:"notificationTemplates" bson:"notificationTemplates"`
	DefaultCurrencySymbol        string                `json:"defaultCurrencySymbol" bson:"defaultCurrencySymbol"`
	PreferredNotificationChannel notification.Channel  `json:"preferredNotificationChannel" bson:"preferredNotificationChannel"`
	CreatedAt                    int64                 `json:"createdAt" bson:"createdAt"`
	UpdatedAt                    int64                 `json:"updatedAt" bson:"updatedAt"`
}

// DefaultSettings trả về settings mặc định cho tenant chưa cấu hình
func DefaultSettings(tenantID primitive.ObjectID) *Settings {
	return &Settings{
		TenantID:                     tenantID,
		CompanyInfo:                  CompanyInfo{Name: DefaultCompanyName},
		DefaultCurrencySymbol:        DefaultCurrencySymbol,
		PreferredNotificationChannel: notification.ChannelWhatsApp,
	}
}

// ApplyDefaults điền giá trị mặc định cho các field còn trống
func (s *Settings) ApplyDefaults() {
	s.ApplyDefaultsWith(DefaultCurrencySymbol)
}

// ApplyDefaultsWith như ApplyDefaults nhưng ký hiệu tiền mặc định lấy từ cấu hình server
func (s *Settings) ApplyDefaultsWith(currencySymbol string) {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	if s.CompanyInfo.Name == "" {
		s.CompanyInfo.Name = DefaultCompanyName
	}
	if s.DefaultCurrencySymbol == "" {
		s.DefaultCurrencySymbol = currencySymbol
	}
	if !s.PreferredNotificationChannel.IsPreference() {
		s.PreferredNotificationChannel = notification.ChannelWhatsApp
	}
}
