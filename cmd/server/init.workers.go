package main

import (
	"context"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/worker"
)

// startWorkers chạy các background worker, dừng khi ctx bị hủy
func startWorkers(ctx context.Context, cfg *config.Configuration, s *appServices) {
	log := logger.GetAppLogger()

	if !cfg.OverdueScanEnabled {
		log.Info("⏰ [OVERDUE_SCAN] Overdue Scan Worker disabled")
		return
	}

	var ops worker.OpsNotifier
	if s.ops != nil {
		ops = s.ops
	}
	w := worker.NewOverdueScanWorker(s.orders, s.users, s.adminNotification, ops, worker.OverdueScanConfig{
		Interval:    cfg.ScanInterval(),
		LeadTime:    cfg.ScanLeadTime(),
		Window:      cfg.ScanWindow(),
		DedupMode:   cfg.OverdueDedupMode,
		FrontendURL: cfg.FrontendURL,
	})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("⏰ [OVERDUE_SCAN] Worker goroutine panic")
			}
		}()
		w.Start(ctx)
	}()
}
