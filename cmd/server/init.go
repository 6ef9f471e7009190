package main

import (
	"context"
	"sort"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/config"
	adminmodels "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/models"
	authmodels "github.com/ndip23/pressing-management-system-sub000/internal/api/auth/models"
	customermodels "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/models"
	deliverymodels "github.com/ndip23/pressing-management-system-sub000/internal/api/delivery/models"
	ordermodels "github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	settingsmodels "github.com/ndip23/pressing-management-system-sub000/internal/api/settings/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/database"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
)

// InitGlobal: tên collection, validator, config, kết nối Mongo + index
func InitGlobal() {
	global.MongoDB_ColNames = global.MongoDB_CollectionName{
		Users:              "auth_users",
		Customers:          "customers",
		Orders:             "orders",
		Settings:           "settings",
		AdminNotifications: "admin_notifications",
		DeliveryHistory:    "delivery_history",
		Counters:           "counters",
	}
	global.InitValidator()

	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logger.GetAppLogger().Fatal("⚙️ [CONFIG] Không đọc được cấu hình")
	}
	initDatabase()
}

// collectionModels collection -> model, index được tạo từ struct tag `index` của model
func collectionModels() map[string]interface{} {
	return map[string]interface{}{
		global.MongoDB_ColNames.Users:              authmodels.User{},
		global.MongoDB_ColNames.Customers:          customermodels.Customer{},
		global.MongoDB_ColNames.Orders:             ordermodels.Order{},
		global.MongoDB_ColNames.Settings:           settingsmodels.Settings{},
		global.MongoDB_ColNames.AdminNotifications: adminmodels.AdminNotification{},
		global.MongoDB_ColNames.DeliveryHistory:    deliverymodels.DeliveryHistory{},
		global.MongoDB_ColNames.Counters:           ordermodels.Counter{},
	}
}

func initDatabase() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	client, err := database.GetInstance(cfg)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	global.MongoDB_Session = client

	db := client.Database(cfg.MongoDB_DBName)
	models := collectionModels()
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := database.EnsureCollections(db, names); err != nil {
		log.Fatalf("ensure collections: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	for _, name := range names {
		// Lỗi index không chặn khởi động, chỉ log để xử lý tay
		if err := database.CreateIndexes(ctx, db.Collection(name), models[name]); err != nil {
			log.WithError(err).WithField("collection", name).Error("🗄️ [MONGO] Tạo index thất bại")
		}
	}
}
