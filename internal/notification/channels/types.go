package channels

import (
	"context"

	settingsModels "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
)

// Recipient thông tin liên hệ của khách nhận thông báo
type Recipient struct {
	Name  string
	Phone string
	Email string
}

// SendRequest yêu cầu gửi một thông báo qua một kênh
type SendRequest struct {
	Recipient Recipient
	Scenario  notification.Scenario
	Variables map[string]interface{}   // Biến render template (customerName, receiptNumber, ...)
	Settings  *settingsModels.Settings // Settings của tenant (template, company info)
	Fields    map[string]interface{}   // Correlation fields cho log (orderId, tenantId, dispatchId)
}

// Result kết quả gửi của một adapter. Adapter không bao giờ trả error:
// mọi lỗi (thiếu cấu hình, input sai, provider lỗi) đều nằm trong Error với Delivered = false
type Result struct {
	Delivered  bool
	Error      string
	ProviderID string // Message id phía provider (Twilio SID) nếu có
}

// Adapter interface chung của các kênh gửi thông báo cho khách
type Adapter interface {
	Channel() notification.Channel
	Send(ctx context.Context, req SendRequest) Result
}

// failed tạo Result thất bại
func failed(reason string) Result {
	return Result{Delivered: false, Error: reason}
}
