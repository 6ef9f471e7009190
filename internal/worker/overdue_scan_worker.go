// Package worker - OverdueScanWorker quét đơn sắp quá hạn và đã quá hạn lấy đồ, tạo cảnh báo nội bộ cho admin.
// Worker không gửi gì cho khách; kênh thông báo khách nằm ở dispatcher.
package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	adminModels "github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/models"
	orderModels "github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	ordersvc "github.com/ndip23/pressing-management-system-sub000/internal/api/order/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
)

// Chế độ chống trùng cảnh báo
const (
	DedupModeUnread = "unread" // Chỉ dựa vào cảnh báo chưa đọc; admin đọc rồi thì lần quét sau có thể tạo lại
	DedupModeFlag   = "flag"   // Bỏ qua đơn đã bật cờ adminNotified*
)

// OrderSource truy vấn đơn quá hạn và bật cờ đã cảnh báo
type OrderSource interface {
	FindImpendingOverdue(ctx context.Context, from, to time.Time, onlyUnflagged bool) ([]orderModels.Order, error)
	FindActualOverdue(ctx context.Context, now time.Time, onlyUnflagged bool) ([]orderModels.Order, error)
	MarkAdminNotified(ctx context.Context, orderID primitive.ObjectID, kind ordersvc.AlertKind) error
}

// AdminDirectory danh bạ admin theo tenant
type AdminDirectory interface {
	ListAdminUserIDs(ctx context.Context, tenantID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// AdminNotificationStore nơi lưu cảnh báo nội bộ
type AdminNotificationStore interface {
	ExistsUnread(ctx context.Context, adminID, orderID primitive.ObjectID, notificationType string) (bool, error)
	Create(ctx context.Context, n adminModels.AdminNotification) (*adminModels.AdminNotification, error)
}

// OpsNotifier kênh phụ báo cho operator (Telegram); tùy chọn
type OpsNotifier interface {
	Notify(ctx context.Context, text, link string) error
}

// OverdueScanConfig cấu hình worker
type OverdueScanConfig struct {
	Interval    time.Duration // Chu kỳ quét
	LeadTime    time.Duration // Mốc "sắp quá hạn" tính từ now
	Window      time.Duration // Độ rộng cửa sổ sắp quá hạn, không nhỏ hơn Interval
	DedupMode   string        // unread | flag
	FrontendURL string        // Gốc URL cho link trong cảnh báo
	Location    *time.Location
}

// ScanResult thống kê một lần quét
type ScanResult struct {
	Impending int // Số đơn sắp quá hạn tìm thấy
	Overdue   int // Số đơn đã quá hạn tìm thấy
	Created   int // Số cảnh báo mới được tạo
	Errors    int // Số lỗi (query, danh bạ, ghi cảnh báo)
}

// OverdueScanWorker worker tạo cảnh báo quá hạn cho admin theo chu kỳ.
// Mỗi lần chạy độc lập; chống trùng bằng kiểm tra cảnh báo chưa đọc, không khóa
type OverdueScanWorker struct {
	orders OrderSource
	admins AdminDirectory
	store  AdminNotificationStore
	ops    OpsNotifier
	cfg    OverdueScanConfig
	now    func() time.Time
}

// NewOverdueScanWorker tạo worker. ops có thể nil
func NewOverdueScanWorker(orders OrderSource, admins AdminDirectory, store AdminNotificationStore, ops OpsNotifier, cfg OverdueScanConfig) *OverdueScanWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.LeadTime <= 0 {
		cfg.LeadTime = 2 * time.Hour
	}
	if cfg.Window < cfg.Interval {
		cfg.Window = cfg.Interval
	}
	if cfg.Window < 5*time.Minute {
		cfg.Window = 5 * time.Minute
	}
	if cfg.DedupMode != DedupModeFlag {
		cfg.DedupMode = DedupModeUnread
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &OverdueScanWorker{
		orders: orders,
		admins: admins,
		store:  store,
		ops:    ops,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Start chạy worker trong vòng lặp cho tới khi ctx bị hủy. Lần quét đầu chạy ngay khi khởi động
func (w *OverdueScanWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.WithFields(logrus.Fields{
		"interval":  w.cfg.Interval.String(),
		"leadTime":  w.cfg.LeadTime.String(),
		"window":    w.cfg.Window.String(),
		"dedupMode": w.cfg.DedupMode,
	}).Info("⏰ [OVERDUE_SCAN] Starting Overdue Scan Worker...")

	w.safeRun(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [OVERDUE_SCAN] Overdue Scan Worker stopped")
			return
		case <-ticker.C:
			w.safeRun(ctx)
		}
	}
}

// safeRun chạy một lần quét, panic được log và không làm dừng vòng lặp
func (w *OverdueScanWorker) safeRun(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().WithField("panic", r).Error("⏰ [OVERDUE_SCAN] Panic khi quét đơn quá hạn, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()
	w.RunOnce(ctx, w.now())
}

// RunOnce thực hiện một lần quét tại thời điểm now. Lỗi của query này không chặn query kia
func (w *OverdueScanWorker) RunOnce(ctx context.Context, now time.Time) ScanResult {
	log := logger.GetAppLogger()
	var res ScanResult
	onlyUnflagged := w.cfg.DedupMode == DedupModeFlag
	admins := map[primitive.ObjectID][]primitive.ObjectID{}

	from, to := ordersvc.ImpendingWindow(now, w.cfg.LeadTime, w.cfg.Window)
	impending, err := w.orders.FindImpendingOverdue(ctx, from, to, onlyUnflagged)
	if err != nil {
		res.Errors++
		log.WithError(err).Error("⏰ [OVERDUE_SCAN] Lỗi truy vấn đơn sắp quá hạn")
	} else {
		res.Impending = len(impending)
		for i := range impending {
			w.alertOrder(ctx, &impending[i], ordersvc.AlertImpendingOverdue, admins, &res)
		}
	}

	overdue, err := w.orders.FindActualOverdue(ctx, now, onlyUnflagged)
	if err != nil {
		res.Errors++
		log.WithError(err).Error("⏰ [OVERDUE_SCAN] Lỗi truy vấn đơn đã quá hạn")
	} else {
		res.Overdue = len(overdue)
		for i := range overdue {
			w.alertOrder(ctx, &overdue[i], ordersvc.AlertActualOverdue, admins, &res)
		}
	}

	if res.Created > 0 || res.Errors > 0 {
		log.WithFields(logrus.Fields{
			"impending": res.Impending,
			"overdue":   res.Overdue,
			"created":   res.Created,
			"errors":    res.Errors,
		}).Info("⏰ [OVERDUE_SCAN] Đã quét đơn quá hạn")
	}
	return res
}

// alertOrder tạo cảnh báo cho mọi admin của tenant chưa có cảnh báo chưa đọc cùng loại, rồi bật cờ trên đơn
func (w *OverdueScanWorker) alertOrder(ctx context.Context, order *orderModels.Order, kind ordersvc.AlertKind, cache map[primitive.ObjectID][]primitive.ObjectID, res *ScanResult) {
	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"orderId":  order.ID.Hex(),
		"tenantId": order.TenantID.Hex(),
		"kind":     kind.FlagField(),
	})

	adminIDs, ok := cache[order.TenantID]
	if !ok {
		ids, err := w.admins.ListAdminUserIDs(ctx, order.TenantID)
		if err != nil {
			res.Errors++
			log.WithError(err).Warn("⏰ [OVERDUE_SCAN] Không lấy được danh sách admin")
			return
		}
		cache[order.TenantID] = ids
		adminIDs = ids
	}

	notificationType, message := w.describe(order, kind)
	link := fmt.Sprintf("%s/admin/orders/%s", w.cfg.FrontendURL, order.ID.Hex())

	created, failed := 0, false
	for _, adminID := range adminIDs {
		exists, err := w.store.ExistsUnread(ctx, adminID, order.ID, notificationType)
		if err != nil {
			res.Errors++
			failed = true
			log.WithError(err).WithField("adminId", adminID.Hex()).Warn("⏰ [OVERDUE_SCAN] Lỗi kiểm tra cảnh báo chưa đọc")
			continue
		}
		if exists {
			continue
		}
		_, err = w.store.Create(ctx, adminModels.AdminNotification{
			TenantID: order.TenantID,
			AdminID:  adminID,
			Type:     notificationType,
			Message:  message,
			Link:     link,
			OrderID:  order.ID,
		})
		if err != nil {
			res.Errors++
			failed = true
			log.WithError(err).WithField("adminId", adminID.Hex()).Warn("⏰ [OVERDUE_SCAN] Không tạo được cảnh báo")
			continue
		}
		created++
	}
	res.Created += created

	if created > 0 && w.ops != nil {
		if err := w.ops.Notify(ctx, message, link); err != nil {
			log.WithError(err).Warn("⏰ [OVERDUE_SCAN] Không gửi được cảnh báo Telegram")
		}
	}

	if failed || kind.Flagged(order) {
		return
	}
	if err := w.orders.MarkAdminNotified(ctx, order.ID, kind); err != nil {
		res.Errors++
		log.WithError(err).Warn("⏰ [OVERDUE_SCAN] Không bật được cờ adminNotified trên đơn")
	}
}

func (w *OverdueScanWorker) describe(order *orderModels.Order, kind ordersvc.AlertKind) (string, string) {
	due := time.UnixMilli(order.ExpectedPickupAt).In(w.cfg.Location).Format("Mon, Jan 2 2006 15:04")
	if kind == ordersvc.AlertActualOverdue {
		return notification.AdminTypeOverdueAlert,
			fmt.Sprintf("Order #%s is overdue for pickup (was due %s).", order.ReceiptNumber, due)
	}
	return notification.AdminTypeOverdueWarning,
		fmt.Sprintf("Order #%s is due for pickup soon (%s).", order.ReceiptNumber, due)
}
