package channels

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Template email dùng khi tenant để trống subject/body của scenario
const (
	DefaultEmailSubject = "Update on your order {{receiptNumber}} from {{companyName}}"
	DefaultEmailBody    = "Dear {{customerName}},\n\n" +
		"Your order {{receiptNumber}} is now {{orderStatus}}.\n" +
		"Expected pickup: {{expectedPickupDate}}\n" +
		"Total: {{totalAmount}}\n\n" +
		"Thank you,\n{{companyName}}\n{{companyPhone}}"
)

// MailSender là phần của *gomail.Dialer mà EmailAdapter cần
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailAdapter gửi email giao dịch qua SMTP
type EmailAdapter struct {
	sender   MailSender // nil khi SMTP chưa cấu hình
	from     string
	fromName string
}

// NewEmailAdapter dựng adapter từ cấu hình. Thiếu cấu hình SMTP thì adapter vẫn được tạo
// nhưng mọi lần Send đều trả Delivered = false
func NewEmailAdapter(cfg *config.Configuration) *EmailAdapter {
	if cfg == nil || !cfg.EmailConfigured() {
		logger.GetAppLogger().Warn("✉️ [EMAIL] SMTP chưa được cấu hình, kênh email bị tắt")
		return &EmailAdapter{}
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPSecure
	return NewEmailAdapterWithSender(dialer, cfg.SMTPFrom, cfg.SMTPFromName)
}

// NewEmailAdapterWithSender dựng adapter với MailSender tùy ý
func NewEmailAdapterWithSender(sender MailSender, from, fromName string) *EmailAdapter {
	return &EmailAdapter{sender: sender, from: from, fromName: fromName}
}

// Channel trả về kênh email
func (a *EmailAdapter) Channel() notification.Channel {
	return notification.ChannelEmail
}

// Configured cho biết transport SMTP đã sẵn sàng
func (a *EmailAdapter) Configured() bool {
	return a != nil && a.sender != nil && a.from != ""
}

// Send render subject/body theo scenario rồi gửi qua SMTP
func (a *EmailAdapter) Send(ctx context.Context, req SendRequest) Result {
	log := logger.WithContext(ctx).WithFields(logrus.Fields(req.Fields)).WithField("scenario", req.Scenario)

	if !a.Configured() {
		log.Warn("✉️ [EMAIL] Bỏ qua: email transport chưa được cấu hình")
		return failed("email transport is not configured")
	}
	to := strings.TrimSpace(req.Recipient.Email)
	if to == "" {
		return failed("customer has no email address")
	}
	if err := ctx.Err(); err != nil {
		return failed(fmt.Sprintf("email send cancelled: %v", err))
	}

	subjectTpl, bodyTpl := DefaultEmailSubject, DefaultEmailBody
	if req.Settings != nil {
		tpl := req.Settings.NotificationTemplates.For(req.Scenario)
		if strings.TrimSpace(tpl.EmailSubject) != "" {
			subjectTpl = tpl.EmailSubject
		}
		if strings.TrimSpace(tpl.EmailBody) != "" {
			bodyTpl = tpl.EmailBody
		}
	}
	subject := notification.Render(subjectTpl, req.Variables)
	body := notification.Render(bodyTpl, req.Variables)

	fromName := a.fromName
	if fromName == "" && req.Settings != nil {
		fromName = req.Settings.CompanyInfo.Name
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", a.from, fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", plainToHTML(body))

	if err := a.sender.DialAndSend(msg); err != nil {
		log.WithError(err).Error("✉️ [EMAIL] Gửi email thất bại")
		return failed(fmt.Sprintf("email send failed: %v", err))
	}

	log.WithField("to", to).Info("✉️ [EMAIL] Đã gửi email")
	return Result{Delivered: true}
}

// plainToHTML escape body text và đổi xuống dòng thành <br>
func plainToHTML(body string) string {
	return "<p>" + strings.ReplaceAll(html.EscapeString(body), "\n", "<br>") + "</p>"
}
