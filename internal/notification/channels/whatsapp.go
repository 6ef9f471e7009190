package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator là phần của Twilio Api service mà WhatsAppAdapter cần
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// WhatsAppAdapter gửi WhatsApp template message qua Twilio Content API
type WhatsAppAdapter struct {
	client             MessageCreator // nil khi Twilio chưa cấu hình
	from               string
	defaultCountryCode string
	fallbackContent    map[notification.Scenario]string // Content SID mức môi trường
}

// NewWhatsAppAdapter dựng adapter từ cấu hình. Thiếu cấu hình Twilio thì mọi lần Send
// đều trả Delivered = false
func NewWhatsAppAdapter(cfg *config.Configuration) *WhatsAppAdapter {
	if cfg == nil || !cfg.WhatsAppConfigured() {
		logger.GetAppLogger().Warn("💬 [WHATSAPP] Twilio chưa được cấu hình, kênh WhatsApp bị tắt")
		cc := ""
		if cfg != nil {
			cc = cfg.DefaultCountryCode
		}
		return &WhatsAppAdapter{defaultCountryCode: cc}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return NewWhatsAppAdapterWithClient(client.Api, cfg.TwilioWhatsAppFrom, cfg.DefaultCountryCode, map[notification.Scenario]string{
		notification.ScenarioReadyForPickup: cfg.TwilioContentReadyPickup,
		notification.ScenarioManualReminder: cfg.TwilioContentManualRemind,
	})
}

// NewWhatsAppAdapterWithClient dựng adapter với MessageCreator tùy ý
func NewWhatsAppAdapterWithClient(client MessageCreator, from, defaultCountryCode string, fallbackContent map[notification.Scenario]string) *WhatsAppAdapter {
	return &WhatsAppAdapter{
		client:             client,
		from:               from,
		defaultCountryCode: defaultCountryCode,
		fallbackContent:    fallbackContent,
	}
}

// Channel trả về kênh WhatsApp
func (a *WhatsAppAdapter) Channel() notification.Channel {
	return notification.ChannelWhatsApp
}

// Configured cho biết Twilio client và số gửi đã sẵn sàng
func (a *WhatsAppAdapter) Configured() bool {
	return a != nil && a.client != nil && a.from != ""
}

// contentSID tìm Content SID cho scenario: settings tenant trước, sau đó fallback môi trường
func (a *WhatsAppAdapter) contentSID(req SendRequest) string {
	if req.Settings != nil {
		if sid := strings.TrimSpace(req.Settings.NotificationTemplates.For(req.Scenario).WhatsAppContentSID); sid != "" {
			return sid
		}
	}
	return strings.TrimSpace(a.fallbackContent[req.Scenario])
}

// Send chuẩn hóa số điện thoại, chọn template và gửi qua Twilio
func (a *WhatsAppAdapter) Send(ctx context.Context, req SendRequest) Result {
	log := logger.WithContext(ctx).WithFields(logrus.Fields(req.Fields)).WithField("scenario", req.Scenario)

	if !a.Configured() {
		log.Warn("💬 [WHATSAPP] Bỏ qua: WhatsApp client chưa được cấu hình")
		return failed("whatsapp client is not configured")
	}
	if strings.TrimSpace(req.Recipient.Phone) == "" {
		return failed("customer has no phone number")
	}

	to, err := NormalizePhone(req.Recipient.Phone, a.defaultCountryCode)
	if err != nil {
		log.WithError(err).Warn("💬 [WHATSAPP] Số điện thoại không chuẩn hóa được")
		return failed(fmt.Sprintf("invalid phone number: %v", err))
	}

	sid := a.contentSID(req)
	if sid == "" {
		return failed(fmt.Sprintf("whatsapp template is not configured for scenario %s", req.Scenario))
	}

	// Biến vị trí của Content template: 1 = tên khách, 2 = số biên nhận, 3 = tên tiệm
	vars, err := json.Marshal(map[string]string{
		"1": notification.Stringify(req.Variables["customerName"]),
		"2": notification.Stringify(req.Variables["receiptNumber"]),
		"3": notification.Stringify(req.Variables["companyName"]),
	})
	if err != nil {
		return failed(fmt.Sprintf("whatsapp variables encoding failed: %v", err))
	}
	if err := ctx.Err(); err != nil {
		return failed(fmt.Sprintf("whatsapp send cancelled: %v", err))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom(whatsappAddress(a.from))
	params.SetContentSid(sid)
	params.SetContentVariables(string(vars))

	msg, err := a.client.CreateMessage(params)
	if err != nil {
		log.WithError(err).Error("💬 [WHATSAPP] Twilio từ chối tin nhắn")
		return failed(fmt.Sprintf("whatsapp send failed: %v", err))
	}

	res := Result{Delivered: true}
	if msg != nil && msg.Sid != nil {
		res.ProviderID = *msg.Sid
	}
	log.WithFields(logrus.Fields{"to": to, "messageSid": res.ProviderID}).Info("💬 [WHATSAPP] Đã gửi WhatsApp")
	return res
}

// whatsappAddress thêm tiền tố "whatsapp:" nếu số gửi chưa có
func whatsappAddress(from string) string {
	if strings.HasPrefix(from, "whatsapp:") {
		return from
	}
	return "whatsapp:" + from
}
