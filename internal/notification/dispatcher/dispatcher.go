// Package dispatcher chọn kênh (WhatsApp/email) để gửi thông báo vòng đời đơn hàng cho khách,
// gọi adapter tương ứng và gộp kết quả thành một Outcome duy nhất.
package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	customerModels "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/models"
	orderModels "github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	settingsModels "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification/channels"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultCustomerName tên hiển thị khi khách để trống tên
	DefaultCustomerName = "Valued Customer"
	// PickupDateLayout định dạng ngày hẹn lấy đồ trong thông báo
	PickupDateLayout = "Mon, Jan 2 2006 15:04"

	errNoContact     = "no contact information on file: customer has neither a phone number nor an email address"
	errNoSuitable    = "no suitable contact method configured for this tenant/customer combination"
	errOptedOut      = "customer notifications are disabled by tenant preference"
	errMissingInputs = "customer and order are required to dispatch a notification"
)

// SettingsProvider cung cấp settings của tenant, trả về mặc định khi tenant chưa cấu hình
type SettingsProvider interface {
	GetSettingsForTenant(ctx context.Context, tenantID primitive.ObjectID) (*settingsModels.Settings, error)
}

// Outcome kết quả gộp của một lần Dispatch
type Outcome struct {
	Sent       bool
	Method     notification.Channel // whatsapp | email | none
	Error      string
	DispatchID string
	Recipient  string // Số điện thoại hoặc email đã nhận thành công
	OptedOut   bool   // Tenant chọn kênh none
	NoContact  bool   // Khách không có phone lẫn email
}

// Dispatcher điều phối gửi thông báo cho khách qua các adapter được inject
type Dispatcher struct {
	settings SettingsProvider
	whatsapp channels.Adapter
	email    channels.Adapter
	location *time.Location
}

// NewDispatcher tạo Dispatcher. Adapter không được nil: dùng adapter chưa cấu hình để tắt kênh
func NewDispatcher(settings SettingsProvider, whatsapp, email channels.Adapter) *Dispatcher {
	return &Dispatcher{
		settings: settings,
		whatsapp: whatsapp,
		email:    email,
		location: time.Local,
	}
}

// WithLocation đặt múi giờ dùng để định dạng ngày hẹn lấy đồ
func (d *Dispatcher) WithLocation(loc *time.Location) *Dispatcher {
	if loc != nil {
		d.location = loc
	}
	return d
}

// Dispatch gửi thông báo scenario cho khách của đơn. Không bao giờ panic hay trả error:
// mọi thất bại nằm trong Outcome.Error
func (d *Dispatcher) Dispatch(ctx context.Context, customer *customerModels.Customer, scenario notification.Scenario, order *orderModels.Order, extra map[string]interface{}) (out Outcome) {
	out = Outcome{Method: notification.ChannelNone, DispatchID: uuid.NewString()}
	ctx = logger.ContextWith(ctx, logger.DispatchIDKey, out.DispatchID)

	fields := logrus.Fields{"dispatchId": out.DispatchID, "scenario": scenario}
	if order != nil {
		fields["orderId"] = order.ID.Hex()
		fields["tenantId"] = order.TenantID.Hex()
	}
	log := logger.WithContext(ctx).WithFields(fields)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("📣 [DISPATCH] Panic khi gửi thông báo: %v", r)
			out = Outcome{Method: notification.ChannelNone, DispatchID: out.DispatchID, Error: fmt.Sprintf("internal dispatcher error: %v", r)}
		}
	}()

	if customer == nil || order == nil {
		log.Error("📣 [DISPATCH] Thiếu customer hoặc order")
		out.Error = errMissingInputs
		return out
	}

	settings, err := d.settings.GetSettingsForTenant(ctx, order.TenantID)
	if err != nil || settings == nil {
		log.WithError(err).Error("📣 [DISPATCH] Không load được settings của tenant")
		out.Error = fmt.Sprintf("failed to load tenant settings: %v", err)
		return out
	}
	settings.ApplyDefaults()

	pref := settings.PreferredNotificationChannel
	if pref == notification.ChannelNone {
		log.Info("📣 [DISPATCH] Tenant tắt thông báo khách, bỏ qua")
		out.OptedOut = true
		out.Error = errOptedOut
		return out
	}

	req := channels.SendRequest{
		Recipient: channels.Recipient{Name: customer.Name, Phone: customer.Phone, Email: customer.Email},
		Scenario:  scenario,
		Variables: d.buildVariables(customer, order, settings, extra),
		Settings:  settings,
		Fields:    fields,
	}

	hasPhone, hasEmail := customer.HasPhone(), customer.HasEmail()
	var reasons []string

	// WhatsApp được thử khi là kênh ưu tiên, hoặc khi ưu tiên email nhưng khách chỉ có phone
	tryWhatsApp := pref == notification.ChannelWhatsApp ||
		(pref == notification.ChannelEmail && !hasEmail && hasPhone)
	if tryWhatsApp {
		if !hasPhone {
			reasons = append(reasons, "whatsapp: customer has no phone number")
		} else if res := d.whatsapp.Send(ctx, req); res.Delivered {
			return d.success(log, out, notification.ChannelWhatsApp, customer.Phone)
		} else {
			log.WithField("reason", res.Error).Warn("📣 [DISPATCH] WhatsApp thất bại, thử kênh tiếp theo")
			reasons = append(reasons, "whatsapp: "+res.Error)
		}
	}

	// Email là kênh ưu tiên, hoặc fallback khi WhatsApp ưu tiên nhưng chưa thành công
	tryEmail := pref == notification.ChannelEmail ||
		(pref == notification.ChannelWhatsApp && hasEmail)
	if tryEmail {
		if !hasEmail {
			reasons = append(reasons, "email: customer has no email address")
		} else if res := d.email.Send(ctx, req); res.Delivered {
			return d.success(log, out, notification.ChannelEmail, customer.Email)
		} else {
			log.WithField("reason", res.Error).Warn("📣 [DISPATCH] Email thất bại")
			reasons = append(reasons, "email: "+res.Error)
		}
	}

	switch {
	case !hasPhone && !hasEmail:
		out.NoContact = true
		out.Error = errNoContact
	case len(reasons) == 0:
		out.Error = errNoSuitable
	default:
		out.Error = strings.Join(reasons, "; ")
	}
	log.WithField("error", out.Error).Warn("📣 [DISPATCH] Không gửi được thông báo qua kênh nào")
	return out
}

func (d *Dispatcher) success(log *logrus.Entry, out Outcome, channel notification.Channel, recipient string) Outcome {
	out.Sent = true
	out.Method = channel
	out.Recipient = recipient
	out.Error = ""
	log.WithField("channel", channel).Info("📣 [DISPATCH] Đã gửi thông báo cho khách")
	return out
}

// buildVariables dựng bộ biến chung cho template, biến extra của caller ghi đè biến chung
func (d *Dispatcher) buildVariables(customer *customerModels.Customer, order *orderModels.Order, settings *settingsModels.Settings, extra map[string]interface{}) map[string]interface{} {
	name := strings.TrimSpace(customer.Name)
	if name == "" {
		name = DefaultCustomerName
	}

	pickup := ""
	if order.ExpectedPickupAt > 0 {
		pickup = time.UnixMilli(order.ExpectedPickupAt).In(d.location).Format(PickupDateLayout)
	}

	vars := map[string]interface{}{
		"customerName":       name,
		"receiptNumber":      order.ReceiptNumber,
		"companyName":        settings.CompanyInfo.Name,
		"companyPhone":       settings.CompanyInfo.Phone,
		"companyAddress":     settings.CompanyInfo.Address,
		"orderStatus":        string(order.Status),
		"expectedPickupDate": pickup,
		"totalAmount":        orderModels.FormatAmount(settings.DefaultCurrencySymbol, order.TotalAmount),
		"amountPaid":         orderModels.FormatAmount(settings.DefaultCurrencySymbol, order.AmountPaid),
	}
	for k, v := range extra {
		vars[k] = v
	}
	return vars
}
