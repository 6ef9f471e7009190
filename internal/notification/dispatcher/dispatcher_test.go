package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	customerModels "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/models"
	orderModels "github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	settingsModels "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSettings struct {
	settings *settingsModels.Settings
	err      error
}

func (f *fakeSettings) GetSettingsForTenant(ctx context.Context, tenantID primitive.ObjectID) (*settingsModels.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := *f.settings
	return &s, nil
}

type fakeAdapter struct {
	channel notification.Channel
	result  channels.Result
	calls   int
	lastReq channels.SendRequest
}

func (f *fakeAdapter) Channel() notification.Channel { return f.channel }

func (f *fakeAdapter) Send(ctx context.Context, req channels.SendRequest) channels.Result {
	f.calls++
	f.lastReq = req
	return f.result
}

func newFixture(pref notification.Channel, waOK, emailOK bool) (*Dispatcher, *fakeAdapter, *fakeAdapter) {
	s := settingsModels.DefaultSettings(primitive.NewObjectID())
	s.PreferredNotificationChannel = pref
	s.CompanyInfo.Name = "Clean Co"

	wa := &fakeAdapter{channel: notification.ChannelWhatsApp, result: channels.Result{Delivered: waOK}}
	if !waOK {
		wa.result.Error = "twilio rejected"
	}
	em := &fakeAdapter{channel: notification.ChannelEmail, result: channels.Result{Delivered: emailOK}}
	if !emailOK {
		em.result.Error = "smtp down"
	}
	d := NewDispatcher(&fakeSettings{settings: s}, wa, em).WithLocation(time.UTC)
	return d, wa, em
}

func testOrder() *orderModels.Order {
	return &orderModels.Order{
		ID:               primitive.NewObjectID(),
		TenantID:         primitive.NewObjectID(),
		ReceiptNumber:    "RCP-20260101-0007",
		Status:           orderModels.StatusReadyForPickup,
		TotalAmount:      42.5,
		ExpectedPickupAt: time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC).UnixMilli(),
	}
}

func TestDispatch_WhatsAppPreferredSucceeds(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, true, true)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.True(t, out.Sent)
	assert.Equal(t, notification.ChannelWhatsApp, out.Method)
	assert.Empty(t, out.Error)
	assert.NotEmpty(t, out.DispatchID)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 0, em.calls)
}

func TestDispatch_FallbackToEmail(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, false, true)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.True(t, out.Sent)
	assert.Equal(t, notification.ChannelEmail, out.Method)
	assert.Empty(t, out.Error, "thất bại một phần không được báo lỗi")
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 1, em.calls)
}

func TestDispatch_TotalFailureNoContact(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, true, true)
	cust := &customerModels.Customer{Name: "Ana"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.False(t, out.Sent)
	assert.True(t, out.NoContact)
	assert.Contains(t, out.Error, "no contact information")
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 0, em.calls)
}

func TestDispatch_OptOut(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelNone, true, true)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.False(t, out.Sent)
	assert.Equal(t, notification.ChannelNone, out.Method)
	assert.True(t, out.OptedOut)
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 0, em.calls)
}

func TestDispatch_EmailPreferredWithoutEmailUsesWhatsApp(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelEmail, true, true)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.True(t, out.Sent)
	assert.Equal(t, notification.ChannelWhatsApp, out.Method)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 0, em.calls)
}

func TestDispatch_EmailPreferredWithEmailSkipsWhatsApp(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelEmail, true, false)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.False(t, out.Sent)
	assert.Equal(t, 0, wa.calls, "ưu tiên email và khách có email thì không thử WhatsApp")
	assert.Equal(t, 1, em.calls)
	assert.Equal(t, "email: smtp down", out.Error)
}

func TestDispatch_WhatsAppPreferredNoEmailFailure(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, false, true)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.False(t, out.Sent)
	assert.False(t, out.NoContact)
	assert.Equal(t, "whatsapp: twilio rejected", out.Error)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 0, em.calls)
}

func TestDispatch_WhatsAppPreferredOnlyEmailOnFile(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, true, true)
	cust := &customerModels.Customer{Name: "Ana", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioManualReminder, testOrder(), nil)

	assert.True(t, out.Sent)
	assert.Equal(t, notification.ChannelEmail, out.Method)
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 1, em.calls)
}

func TestDispatch_BothChannelsFailJoinsReasons(t *testing.T) {
	d, _, _ := newFixture(notification.ChannelWhatsApp, false, false)
	cust := &customerModels.Customer{Name: "Ana", Phone: "5551234567", Email: "ana@example.com"}

	out := d.Dispatch(context.Background(), cust, notification.ScenarioReadyForPickup, testOrder(), nil)

	assert.False(t, out.Sent)
	assert.Equal(t, "whatsapp: twilio rejected; email: smtp down", out.Error)
}

func TestDispatch_MissingInputs(t *testing.T) {
	d, wa, em := newFixture(notification.ChannelWhatsApp, true, true)

	out := d.Dispatch(context.Background(), nil, notification.ScenarioReadyForPickup, testOrder(), nil)
	assert.False(t, out.Sent)
	assert.NotEmpty(t, out.Error)

	out = d.Dispatch(context.Background(), &customerModels.Customer{Phone: "5551234567"}, notification.ScenarioReadyForPickup, nil, nil)
	assert.False(t, out.Sent)
	assert.Equal(t, 0, wa.calls+em.calls)
}

func TestDispatch_SettingsErrorDoesNotSend(t *testing.T) {
	wa := &fakeAdapter{result: channels.Result{Delivered: true}}
	em := &fakeAdapter{result: channels.Result{Delivered: true}}
	d := NewDispatcher(&fakeSettings{err: errors.New("mongo down")}, wa, em)

	out := d.Dispatch(context.Background(), &customerModels.Customer{Phone: "5551234567"}, notification.ScenarioReadyForPickup, testOrder(), nil)
	assert.False(t, out.Sent)
	assert.Contains(t, out.Error, "mongo down")
	assert.Equal(t, 0, wa.calls+em.calls)
}

func TestDispatch_Variables(t *testing.T) {
	d, wa, _ := newFixture(notification.ChannelWhatsApp, true, true)
	cust := &customerModels.Customer{Name: "  ", Phone: "5551234567"}

	d.Dispatch(context.Background(), cust, notification.ScenarioManualReminder, testOrder(), map[string]interface{}{"otp": "1234"})

	require.Equal(t, 1, wa.calls)
	vars := wa.lastReq.Variables
	assert.Equal(t, DefaultCustomerName, vars["customerName"])
	assert.Equal(t, "RCP-20260101-0007", vars["receiptNumber"])
	assert.Equal(t, "Clean Co", vars["companyName"])
	assert.Equal(t, "Ready for Pickup", vars["orderStatus"])
	assert.Equal(t, "$42.50", vars["totalAmount"])
	assert.Equal(t, "Fri, Jan 2 2026 10:30", vars["expectedPickupDate"])
	assert.Equal(t, "1234", vars["otp"])
	assert.Equal(t, notification.ScenarioManualReminder, wa.lastReq.Scenario)
}

type panicAdapter struct{ fakeAdapter }

func (p *panicAdapter) Send(ctx context.Context, req channels.SendRequest) channels.Result {
	panic("boom")
}

func TestDispatch_NeverPanics(t *testing.T) {
	s := settingsModels.DefaultSettings(primitive.NewObjectID())
	d := NewDispatcher(&fakeSettings{settings: s}, &panicAdapter{}, &fakeAdapter{})

	var out Outcome
	assert.NotPanics(t, func() {
		out = d.Dispatch(context.Background(), &customerModels.Customer{Phone: "5551234567"}, notification.ScenarioReadyForPickup, testOrder(), nil)
	})
	assert.False(t, out.Sent)
	assert.Contains(t, out.Error, "boom")
}
