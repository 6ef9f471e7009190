package settingssvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeStore struct {
	doc       *models.Settings
	err       error
	findCalls int
	lastSet   bson.M
}

func (f *fakeStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Settings, error) {
	f.findCalls++
	if f.err != nil {
		return models.Settings{}, f.err
	}
	if f.doc == nil {
		return models.Settings{}, common.ErrNotFound
	}
	return *f.doc, nil
}

func (f *fakeStore) Upsert(ctx context.Context, filter interface{}, set bson.M) (models.Settings, error) {
	f.lastSet = set
	doc := models.Settings{TenantID: set["tenantId"].(primitive.ObjectID)}
	if ci, ok := set["companyInfo"].(models.CompanyInfo); ok {
		doc.CompanyInfo = ci
	}
	if ch, ok := set["preferredNotificationChannel"].(string); ok {
		doc.PreferredNotificationChannel = notification.Channel(ch)
	}
	f.doc = &doc
	return doc, nil
}

type memCache struct {
	items   map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{items: map[string][]byte{}} }

func (m *memCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.items, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func TestGetSettingsForTenant_DefaultsWhenMissing(t *testing.T) {
	svc := NewSettingsServiceWithStore(&fakeStore{}, nil, 0)
	tenant := primitive.NewObjectID()

	s, err := svc.GetSettingsForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, tenant, s.TenantID)
	assert.Equal(t, models.DefaultCompanyName, s.CompanyInfo.Name)
	assert.Equal(t, "$", s.DefaultCurrencySymbol)
	assert.Equal(t, notification.ChannelWhatsApp, s.PreferredNotificationChannel)
}

func TestGetSettingsForTenant_ConfiguredCurrency(t *testing.T) {
	tenant := primitive.NewObjectID()

	svc := NewSettingsServiceWithStore(&fakeStore{}, nil, 0).SetDefaultCurrency("FCFA")
	s, err := svc.GetSettingsForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, "FCFA", s.DefaultCurrencySymbol, "tenant chưa có document dùng ký hiệu từ cấu hình")

	// Document có sẵn nhưng thiếu ký hiệu tiền
	store := &fakeStore{doc: &models.Settings{TenantID: tenant}}
	svc = NewSettingsServiceWithStore(store, nil, 0).SetDefaultCurrency("€")
	s, err = svc.GetSettingsForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, "€", s.DefaultCurrencySymbol)

	// Tenant đã cấu hình thì giữ giá trị của tenant
	store = &fakeStore{doc: &models.Settings{TenantID: tenant, DefaultCurrencySymbol: "£"}}
	svc = NewSettingsServiceWithStore(store, nil, 0).SetDefaultCurrency("€")
	s, err = svc.GetSettingsForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, "£", s.DefaultCurrencySymbol)

	// Chuỗi rỗng giữ mặc định "$"
	svc = NewSettingsServiceWithStore(&fakeStore{}, nil, 0).SetDefaultCurrency("")
	s, err = svc.GetSettingsForTenant(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, "$", s.DefaultCurrencySymbol)
}

func TestGetSettingsForTenant_StoreErrorPropagates(t *testing.T) {
	svc := NewSettingsServiceWithStore(&fakeStore{err: common.ErrConnection}, nil, 0)
	_, err := svc.GetSettingsForTenant(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, common.ErrConnection))
}

func TestGetSettingsForTenant_CachesAndInvalidates(t *testing.T) {
	tenant := primitive.NewObjectID()
	store := &fakeStore{doc: &models.Settings{TenantID: tenant, PreferredNotificationChannel: notification.ChannelEmail}}
	cache := newMemCache()
	svc := NewSettingsServiceWithStore(store, cache, time.Minute)
	ctx := context.Background()

	s, err := svc.GetSettingsForTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, notification.ChannelEmail, s.PreferredNotificationChannel)

	_, err = svc.GetSettingsForTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, store.findCalls, "lần đọc thứ hai phải lấy từ cache")

	_, err = svc.UpdateSettings(ctx, tenant, &dto.SettingsUpdateInput{PreferredNotificationChannel: "none"})
	require.NoError(t, err)
	assert.Contains(t, cache.deleted, cacheKey(tenant))

	s, err = svc.GetSettingsForTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, notification.ChannelNone, s.PreferredNotificationChannel)
	assert.Equal(t, 2, store.findCalls)
}

func TestUpdateSettings_OnlyProvidedFields(t *testing.T) {
	store := &fakeStore{}
	svc := NewSettingsServiceWithStore(store, nil, 0)
	tenant := primitive.NewObjectID()

	out, err := svc.UpdateSettings(context.Background(), tenant, &dto.SettingsUpdateInput{
		CompanyInfo: &models.CompanyInfo{Name: "Clean Co", Phone: "+237600000000"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Clean Co", out.CompanyInfo.Name)
	assert.Contains(t, store.lastSet, "companyInfo")
	assert.NotContains(t, store.lastSet, "notificationTemplates")
	assert.NotContains(t, store.lastSet, "preferredNotificationChannel")
	assert.Equal(t, notification.ChannelWhatsApp, out.PreferredNotificationChannel, "giá trị thiếu được điền mặc định")
}
