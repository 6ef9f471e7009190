package main

import (
	"context"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/config"
	adminnotificationhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/handler"
	adminnotificationsvc "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/service"
	authhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/auth/handler"
	authsvc "github.com/ndip23/pressing-management-system-sub000/internal/api/auth/service"
	basehdl "github.com/ndip23/pressing-management-system-sub000/internal/api/base/handler"
	customerhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/handler"
	customersvc "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/service"
	deliverysvc "github.com/ndip23/pressing-management-system-sub000/internal/api/delivery/service"
	orderhdl "github.com/ndip23/pressing-management-system-sub000/internal/api/order/handler"
	ordersvc "github.com/ndip23/pressing-management-system-sub000/internal/api/order/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/router"
	settingshdl "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/handler"
	settingssvc "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/cache"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification/channels"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification/dispatcher"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// appServices các service singleton dùng chung cho handler và worker
type appServices struct {
	cache             *cache.RedisCache
	users             *authsvc.UserService
	customers         *customersvc.CustomerService
	settings          *settingssvc.SettingsService
	orders            *ordersvc.OrderService
	deliveries        *deliverysvc.DeliveryHistoryService
	adminNotification *adminnotificationsvc.AdminNotificationService
	ops               *channels.TelegramOpsNotifier
}

// InitServices dựng service, adapter và dispatcher. Kênh thiếu cấu hình chỉ bị tắt, không làm dừng server
func InitServices(cfg *config.Configuration) (*appServices, error) {
	log := logger.GetAppLogger()
	s := &appServices{}

	s.cache = cache.NewRedisCacheFromConfig(cfg)
	var settingsCache settingssvc.JSONCache
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.cache.Ping(ctx); err != nil {
			log.WithError(err).Warn("Redis không phản hồi, settings sẽ đọc thẳng MongoDB")
			_ = s.cache.Close()
			s.cache = nil
		} else {
			settingsCache = s.cache
		}
		cancel()
	}

	var err error
	if s.users, err = authsvc.NewUserService(); err != nil {
		return nil, err
	}
	if s.customers, err = customersvc.NewCustomerService(); err != nil {
		return nil, err
	}
	if s.settings, err = settingssvc.NewSettingsService(settingsCache, time.Duration(cfg.SettingsCacheTTL)*time.Second); err != nil {
		return nil, err
	}
	s.settings.SetDefaultCurrency(cfg.DefaultCurrency)
	if s.deliveries, err = deliverysvc.NewDeliveryHistoryService(); err != nil {
		return nil, err
	}
	if s.adminNotification, err = adminnotificationsvc.NewAdminNotificationService(); err != nil {
		return nil, err
	}
	receipts, err := ordersvc.NewReceiptCounter(cfg.ReceiptPrefix)
	if err != nil {
		return nil, err
	}

	email := channels.NewEmailAdapter(cfg)
	whatsapp := channels.NewWhatsAppAdapter(cfg)
	log.WithFields(map[string]interface{}{
		"email":    email.Configured(),
		"whatsapp": whatsapp.Configured(),
	}).Info("📣 [DISPATCH] Notification channels initialized")

	s.orders, err = ordersvc.NewOrderService(ordersvc.OrderServiceDeps{
		Customers:  s.customers,
		Dispatcher: dispatcher.NewDispatcher(s.settings, whatsapp, email),
		History:    s.deliveries,
		Receipts:   receipts,
	})
	if err != nil {
		return nil, err
	}

	s.ops, err = channels.NewTelegramOpsNotifier(cfg)
	if err != nil {
		log.WithError(err).Warn("Telegram ops notifier không khởi tạo được, bỏ qua")
		s.ops = nil
	}
	return s, nil
}

// handlers dựng handler cho router
func (s *appServices) handlers() router.Handlers {
	var cache basehdl.Pinger
	if s.cache != nil {
		cache = s.cache
	}
	mongoPing := basehdl.PingerFunc(func(ctx context.Context) error {
		return global.MongoDB_Session.Ping(ctx, readpref.Primary())
	})
	return router.Handlers{
		System:            basehdl.NewSystemHandler(mongoPing, cache),
		Users:             authhdl.NewUserHandler(s.users),
		Customers:         customerhdl.NewCustomerHandler(s.customers),
		Orders:            orderhdl.NewOrderHandler(s.orders, s.deliveries),
		Settings:          settingshdl.NewSettingsHandler(s.settings),
		AdminNotification: adminnotificationhdl.NewAdminNotificationHandler(s.adminNotification),
	}
}
