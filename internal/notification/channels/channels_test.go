package channels

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	settingsModels "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"
)

type fakeMailSender struct {
	calls int
	last  *gomail.Message
	err   error
}

func (f *fakeMailSender) DialAndSend(m ...*gomail.Message) error {
	f.calls++
	if len(m) > 0 {
		f.last = m[0]
	}
	return f.err
}

type fakeTwilio struct {
	calls int
	last  *openapi.CreateMessageParams
	err   error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.calls++
	f.last = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func testSettings() *settingsModels.Settings {
	s := settingsModels.DefaultSettings(primitive.NewObjectID())
	s.NotificationTemplates.ReadyForPickup = settingsModels.ScenarioTemplate{
		EmailSubject:       "Đơn {{receiptNumber}} sẵn sàng",
		EmailBody:          "Chào {{customerName}}",
		WhatsAppContentSID: "HX-ready",
	}
	return s
}

func testVars() map[string]interface{} {
	return map[string]interface{}{
		"customerName":  "Ana",
		"receiptNumber": "RCP-20260101-0001",
		"companyName":   "Our Pressing",
	}
}

func TestEmailAdapter_Unconfigured(t *testing.T) {
	a := NewEmailAdapter(nil)
	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Email: "a@b.c"}, Scenario: notification.ScenarioReadyForPickup})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "not configured")
}

func TestEmailAdapter_RendersScenarioTemplate(t *testing.T) {
	sender := &fakeMailSender{}
	a := NewEmailAdapterWithSender(sender, "shop@example.com", "Shop")

	res := a.Send(context.Background(), SendRequest{
		Recipient: Recipient{Name: "Ana", Email: "ana@example.com"},
		Scenario:  notification.ScenarioReadyForPickup,
		Variables: testVars(),
		Settings:  testSettings(),
	})

	require.True(t, res.Delivered, res.Error)
	require.Equal(t, 1, sender.calls)
	assert.Equal(t, []string{"Đơn RCP-20260101-0001 sẵn sàng"}, sender.last.GetHeader("Subject"))
	assert.Equal(t, []string{"ana@example.com"}, sender.last.GetHeader("To"))
}

func TestEmailAdapter_FallsBackToGenericTemplate(t *testing.T) {
	sender := &fakeMailSender{}
	a := NewEmailAdapterWithSender(sender, "shop@example.com", "")

	res := a.Send(context.Background(), SendRequest{
		Recipient: Recipient{Email: "ana@example.com"},
		Scenario:  notification.ScenarioManualReminder,
		Variables: testVars(),
		Settings:  testSettings(),
	})

	require.True(t, res.Delivered)
	assert.Equal(t, []string{"Update on your order RCP-20260101-0001 from Our Pressing"}, sender.last.GetHeader("Subject"))
}

func TestEmailAdapter_ProviderErrorPreserved(t *testing.T) {
	sender := &fakeMailSender{err: errors.New("535 auth failed")}
	a := NewEmailAdapterWithSender(sender, "shop@example.com", "Shop")

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Email: "ana@example.com"}, Scenario: notification.ScenarioReadyForPickup, Variables: testVars()})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "535 auth failed")
}

func TestEmailAdapter_MissingEmailSkipsProvider(t *testing.T) {
	sender := &fakeMailSender{}
	a := NewEmailAdapterWithSender(sender, "shop@example.com", "Shop")

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "5551234567"}, Scenario: notification.ScenarioReadyForPickup})
	assert.False(t, res.Delivered)
	assert.Equal(t, 0, sender.calls)
}

func TestWhatsAppAdapter_Unconfigured(t *testing.T) {
	a := NewWhatsAppAdapter(nil)
	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "5551234567"}, Scenario: notification.ScenarioReadyForPickup})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "not configured")
}

func TestWhatsAppAdapter_SendsTemplate(t *testing.T) {
	client := &fakeTwilio{}
	a := NewWhatsAppAdapterWithClient(client, "+14155238886", "1", nil)

	res := a.Send(context.Background(), SendRequest{
		Recipient: Recipient{Phone: "555-123-4567"},
		Scenario:  notification.ScenarioReadyForPickup,
		Variables: testVars(),
		Settings:  testSettings(),
	})

	require.True(t, res.Delivered, res.Error)
	assert.Equal(t, "SM123", res.ProviderID)
	require.Equal(t, 1, client.calls)
	assert.Equal(t, "whatsapp:+15551234567", *client.last.To)
	assert.Equal(t, "whatsapp:+14155238886", *client.last.From)
	assert.Equal(t, "HX-ready", *client.last.ContentSid)

	var vars map[string]string
	require.NoError(t, json.Unmarshal([]byte(*client.last.ContentVariables), &vars))
	assert.Equal(t, map[string]string{"1": "Ana", "2": "RCP-20260101-0001", "3": "Our Pressing"}, vars)
}

func TestWhatsAppAdapter_PointerVariablesRenderLikeTemplates(t *testing.T) {
	client := &fakeTwilio{}
	a := NewWhatsAppAdapterWithClient(client, "+14155238886", "237", nil)

	name := "Ana"
	var receipt *string
	res := a.Send(context.Background(), SendRequest{
		Recipient: Recipient{Phone: "677123456"},
		Scenario:  notification.ScenarioReadyForPickup,
		Variables: map[string]interface{}{"customerName": &name, "receiptNumber": receipt, "companyName": nil},
		Settings:  testSettings(),
	})

	require.True(t, res.Delivered, res.Error)
	assert.Equal(t, "whatsapp:+237677123456", *client.last.To)
	var vars map[string]string
	require.NoError(t, json.Unmarshal([]byte(*client.last.ContentVariables), &vars))
	assert.Equal(t, map[string]string{"1": "Ana", "2": "", "3": ""}, vars)
}

func TestWhatsAppAdapter_BadPhoneNoProviderCall(t *testing.T) {
	client := &fakeTwilio{}
	a := NewWhatsAppAdapterWithClient(client, "+14155238886", "1", nil)

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "abc"}, Scenario: notification.ScenarioReadyForPickup, Settings: testSettings()})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "invalid phone number")
	assert.Equal(t, 0, client.calls)
}

func TestWhatsAppAdapter_TemplateNotConfigured(t *testing.T) {
	client := &fakeTwilio{}
	a := NewWhatsAppAdapterWithClient(client, "+14155238886", "1", nil)

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "5551234567"}, Scenario: notification.ScenarioManualReminder, Settings: testSettings()})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "template is not configured")
	assert.Equal(t, 0, client.calls)
}

func TestWhatsAppAdapter_EnvFallbackTemplate(t *testing.T) {
	client := &fakeTwilio{}
	a := NewWhatsAppAdapterWithClient(client, "whatsapp:+14155238886", "1", map[notification.Scenario]string{
		notification.ScenarioManualReminder: "HX-env",
	})

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "5551234567"}, Scenario: notification.ScenarioManualReminder, Settings: testSettings(), Variables: testVars()})
	require.True(t, res.Delivered)
	assert.Equal(t, "HX-env", *client.last.ContentSid)
	assert.Equal(t, "whatsapp:+14155238886", *client.last.From)
}

func TestWhatsAppAdapter_ProviderError(t *testing.T) {
	client := &fakeTwilio{err: errors.New("Status: 400 - 63016")}
	a := NewWhatsAppAdapterWithClient(client, "+14155238886", "1", nil)

	res := a.Send(context.Background(), SendRequest{Recipient: Recipient{Phone: "5551234567"}, Scenario: notification.ScenarioReadyForPickup, Settings: testSettings()})
	assert.False(t, res.Delivered)
	assert.Contains(t, res.Error, "63016")
}

type fakeTelegram struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramOpsNotifier_SendsToAllChats(t *testing.T) {
	bot := &fakeTelegram{}
	n, err := NewTelegramOpsNotifierWithSender(bot, []string{"-100", " 200 "})
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), "Đơn quá hạn", "http://localhost:3000/admin/orders/1"))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(-100), bot.sent[0].ChatID)
	assert.Nil(t, bot.sent[0].ReplyMarkup, "link localhost phải bị bỏ")

	require.NoError(t, n.Notify(context.Background(), "Đơn quá hạn", "https://app.example.com/admin/orders/1"))
	assert.NotNil(t, bot.sent[2].ReplyMarkup)
}

func TestTelegramOpsNotifier_InvalidChatID(t *testing.T) {
	_, err := NewTelegramOpsNotifierWithSender(&fakeTelegram{}, []string{"abc"})
	assert.Error(t, err)
}

func TestTelegramOpsNotifier_NilIsNoop(t *testing.T) {
	var n *TelegramOpsNotifier
	assert.NoError(t, n.Notify(context.Background(), "x", ""))
}
