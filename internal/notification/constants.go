package notification

// Scenario - ngữ cảnh gửi thông báo cho khách, quyết định template được dùng
type Scenario string

const (
	ScenarioReadyForPickup Scenario = "readyForPickup" // Đơn đã sẵn sàng để lấy
	ScenarioManualReminder Scenario = "manualReminder" // Operator bấm nhắc lại thủ công
)

// IsValid kiểm tra scenario có được hỗ trợ
func (s Scenario) IsValid() bool {
	return s == ScenarioReadyForPickup || s == ScenarioManualReminder
}

// Channel - kênh gửi tới khách. ChannelNone chỉ dùng làm preference (tenant tắt thông báo)
// hoặc kết quả khi không gửi được
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelNone     Channel = "none"
)

// IsPreference kiểm tra giá trị hợp lệ cho preferredNotificationChannel
func (c Channel) IsPreference() bool {
	switch c {
	case ChannelWhatsApp, ChannelEmail, ChannelNone:
		return true
	}
	return false
}

// Method - giá trị notificationMethod lưu trên đơn hàng
type Method string

const (
	MethodNone           Method = "none"
	MethodEmail          Method = "email"
	MethodWhatsApp       Method = "whatsapp"
	MethodSMS            Method = "sms"
	MethodManualEmail    Method = "manual-email"
	MethodManualWhatsApp Method = "manual-whatsapp"
	MethodManualSMS      Method = "manual-sms"
	MethodFailedAuto     Method = "failed-auto"     // Có liên hệ nhưng gửi tự động thất bại
	MethodNoContactAuto  Method = "no-contact-auto" // Khách không có phone lẫn email
)

// IsValid kiểm tra method thuộc tập giá trị hợp lệ
func (m Method) IsValid() bool {
	switch m {
	case MethodNone, MethodEmail, MethodWhatsApp, MethodSMS,
		MethodManualEmail, MethodManualWhatsApp, MethodManualSMS,
		MethodFailedAuto, MethodNoContactAuto:
		return true
	}
	return false
}

// MethodFor trả về notificationMethod tương ứng với kênh đã gửi thành công.
// manual = true thêm tiền tố "manual-"
func MethodFor(channel Channel, manual bool) Method {
	switch channel {
	case ChannelWhatsApp:
		if manual {
			return MethodManualWhatsApp
		}
		return MethodWhatsApp
	case ChannelEmail:
		if manual {
			return MethodManualEmail
		}
		return MethodEmail
	}
	return MethodNone
}

// Admin notification types (cảnh báo nội bộ do scanner tạo)
const (
	AdminTypeOverdueWarning = "overdue_warning" // Sắp quá hạn lấy đồ
	AdminTypeOverdueAlert   = "overdue_alert"   // Đã quá hạn lấy đồ
)
