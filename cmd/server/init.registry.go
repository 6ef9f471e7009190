package main

import (
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
)

// InitRegistry đăng ký database và các collection để service lấy theo tên
func InitRegistry() {
	log := logger.GetAppLogger()
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	if _, err := global.RegistryDatabase.Register(dbName, db); err != nil {
		log.Fatalf("register database %s: %v", dbName, err)
	}

	for name := range collectionModels() {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			log.Fatalf("register collection %s: %v", name, err)
		}
	}
	log.WithField("collections", global.RegistryCollections.Names()).Info("🗄️ [MONGO] Đã đăng ký registry")
}
