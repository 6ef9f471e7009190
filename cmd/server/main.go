package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ndip23/pressing-management-system-sub000/internal/database"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
)

func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("logger init: %v", err))
	}
	logger.GetAppLogger().Info("🪵 [LOGGER] Đã khởi tạo logger")
}

func main() {
	initLogger()
	defer logger.Shutdown()
	InitGlobal()
	InitRegistry()

	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	services, err := InitServices(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWorkers(ctx, cfg, services)

	app := InitFiberApp(services.handlers())
	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error shutting down Fiber")
		}
	}()

	log.WithField("address", cfg.Address).Info("🚀 [SERVER] Bắt đầu lắng nghe HTTP")
	if err := app.Listen(cfg.Address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.WithError(err).Error("🚀 [SERVER] Listen thất bại")
	}

	if services.cache != nil {
		_ = services.cache.Close()
	}
	if err := database.CloseInstance(global.MongoDB_Session); err != nil {
		log.WithError(err).Warn("🗄️ [MONGO] Đóng kết nối thất bại")
	}
	log.Info("🚀 [SERVER] Đã dừng")
}
