package settingssvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsStore các thao tác Mongo mà SettingsService cần
type settingsStore interface {
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Settings, error)
	Upsert(ctx context.Context, filter interface{}, set bson.M) (models.Settings, error)
}

// JSONCache cache đọc/ghi JSON (Redis)
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SettingsService đọc/ghi settings tenant, có cache Redis read-through (optional)
type SettingsService struct {
	store    settingsStore
	cache    JSONCache
	ttl      time.Duration
	currency string // ký hiệu tiền cho tenant chưa cấu hình (DEFAULT_CURRENCY_SYMBOL)
}

// NewSettingsService tạo service từ collection đã đăng ký trong registry
func NewSettingsService(cache JSONCache, ttl time.Duration) (*SettingsService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Settings)
	if !exist {
		return nil, fmt.Errorf("failed to get settings collection: %v", common.ErrNotFound)
	}
	return NewSettingsServiceWithStore(basesvc.NewBaseServiceMongo[models.Settings](col), cache, ttl), nil
}

// NewSettingsServiceWithStore tạo service với store tùy ý. cache có thể nil
func NewSettingsServiceWithStore(store settingsStore, cache JSONCache, ttl time.Duration) *SettingsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SettingsService{store: store, cache: cache, ttl: ttl, currency: models.DefaultCurrencySymbol}
}

// SetDefaultCurrency đổi ký hiệu tiền mặc định; chuỗi rỗng giữ nguyên giá trị cũ
func (s *SettingsService) SetDefaultCurrency(symbol string) *SettingsService {
	if symbol != "" {
		s.currency = symbol
	}
	return s
}

func cacheKey(tenantID primitive.ObjectID) string {
	return "settings:" + tenantID.Hex()
}

// GetSettingsForTenant trả về settings của tenant, mặc định khi chưa có document
func (s *SettingsService) GetSettingsForTenant(ctx context.Context, tenantID primitive.ObjectID) (*models.Settings, error) {
	log := logger.WithContext(ctx).WithField("tenantId", tenantID.Hex())

	if s.cache != nil {
		var cached models.Settings
		found, err := s.cache.GetJSON(ctx, cacheKey(tenantID), &cached)
		if err != nil {
			log.WithError(err).Warn("⚙️ [SETTINGS] Đọc cache thất bại, fallback Mongo")
		} else if found {
			cached.ApplyDefaultsWith(s.currency)
			return &cached, nil
		}
	}

	settings, err := s.store.FindOne(ctx, bson.M{"tenantId": tenantID}, nil)
	var result *models.Settings
	switch {
	case err == nil:
		result = &settings
		result.ApplyDefaultsWith(s.currency)
	case errors.Is(err, common.ErrNotFound):
		result = models.DefaultSettings(tenantID)
		result.DefaultCurrencySymbol = s.currency
	default:
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey(tenantID), result, s.ttl); err != nil {
			log.WithError(err).Warn("⚙️ [SETTINGS] Ghi cache thất bại")
		}
	}
	return result, nil
}

// UpdateSettings upsert settings của tenant rồi xóa cache
func (s *SettingsService) UpdateSettings(ctx context.Context, tenantID primitive.ObjectID, input *dto.SettingsUpdateInput) (*models.Settings, error) {
	if input == nil {
		return nil, common.ErrInvalidInput
	}

	set := bson.M{"tenantId": tenantID}
	if input.CompanyInfo != nil {
		set["companyInfo"] = *input.CompanyInfo
	}
	if input.NotificationTemplates != nil {
		set["notificationTemplates"] = *input.NotificationTemplates
	}
	if input.DefaultCurrencySymbol != "" {
		set["defaultCurrencySymbol"] = input.DefaultCurrencySymbol
	}
	if input.PreferredNotificationChannel != "" {
		set["preferredNotificationChannel"] = input.PreferredNotificationChannel
	}

	updated, err := s.store.Upsert(ctx, bson.M{"tenantId": tenantID}, set)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey(tenantID)); err != nil {
			logger.WithContext(ctx).WithError(err).WithField("tenantId", tenantID.Hex()).Warn("⚙️ [SETTINGS] Xóa cache thất bại")
		}
	}

	updated.ApplyDefaultsWith(s.currency)
	return &updated, nil
}
