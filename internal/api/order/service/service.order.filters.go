package ordersvc

import (
	"time"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	"go.mongodb.org/mongo-driver/bson"
)

// AlertKind loại cảnh báo quá hạn gửi cho admin
type AlertKind int

const (
	AlertImpendingOverdue AlertKind = iota // Sắp quá hạn lấy đồ
	AlertActualOverdue                     // Đã quá hạn lấy đồ
)

// FlagField trả về field cờ trên đơn tương ứng với loại cảnh báo
func (k AlertKind) FlagField() string {
	if k == AlertActualOverdue {
		return "adminNotifiedActualOverdue"
	}
	return "adminNotifiedImpendingOverdue"
}

// Flagged cho biết đơn đã được đánh dấu cảnh báo loại k
func (k AlertKind) Flagged(o *models.Order) bool {
	if k == AlertActualOverdue {
		return o.AdminNotifiedActualOverdue
	}
	return o.AdminNotifiedImpendingOverdue
}

// ImpendingWindow tính cửa sổ [from, to] của hạn lấy đồ được coi là "sắp quá hạn":
// to = now + lead, from = to - width
func ImpendingWindow(now time.Time, lead, width time.Duration) (from, to time.Time) {
	to = now.Add(lead)
	return to.Add(-width), to
}

// ImpendingOverdueFilter đơn chưa đóng có hạn lấy đồ nằm trong [from, to]
func ImpendingOverdueFilter(from, to time.Time, onlyUnflagged bool) bson.M {
	filter := bson.M{
		"status":           bson.M{"$nin": models.ClosedStatuses},
		"expectedPickupAt": bson.M{"$gte": from.UnixMilli(), "$lte": to.UnixMilli()},
	}
	if onlyUnflagged {
		filter[AlertImpendingOverdue.FlagField()] = bson.M{"$ne": true}
	}
	return filter
}

// ActualOverdueFilter đơn chưa đóng có hạn lấy đồ đã qua (trước now)
func ActualOverdueFilter(now time.Time, onlyUnflagged bool) bson.M {
	filter := bson.M{
		"status":           bson.M{"$nin": models.ClosedStatuses},
		"expectedPickupAt": bson.M{"$gt": int64(0), "$lt": now.UnixMilli()},
	}
	if onlyUnflagged {
		filter[AlertActualOverdue.FlagField()] = bson.M{"$ne": true}
	}
	return filter
}

// IsImpendingOverdue predicate tương đương ImpendingOverdueFilter (không xét cờ)
func IsImpendingOverdue(o *models.Order, from, to time.Time) bool {
	return !o.Status.IsClosed() &&
		o.ExpectedPickupAt >= from.UnixMilli() &&
		o.ExpectedPickupAt <= to.UnixMilli()
}

// IsActualOverdue predicate tương đương ActualOverdueFilter (không xét cờ)
func IsActualOverdue(o *models.Order, now time.Time) bool {
	return !o.Status.IsClosed() && o.ExpectedPickupAt > 0 && o.ExpectedPickupAt < now.UnixMilli()
}
