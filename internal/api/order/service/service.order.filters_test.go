package ordersvc

import (
	"testing"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestImpendingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	from, to := ImpendingWindow(now, 2*time.Hour, 15*time.Minute)

	assert.Equal(t, now.Add(105*time.Minute), from)
	assert.Equal(t, now.Add(2*time.Hour), to)

	cases := []struct {
		name      string
		offset    time.Duration
		status    models.OrderStatus
		impending bool
		overdue   bool
	}{
		{"within window", 116 * time.Minute, models.StatusProcessing, true, false},
		{"window upper edge", 2 * time.Hour, models.StatusPending, true, false},
		{"beyond window", 125 * time.Minute, models.StatusProcessing, false, false},
		{"already overdue", -5 * time.Minute, models.StatusReadyForPickup, false, true},
		{"closed order", 116 * time.Minute, models.StatusCompleted, false, false},
		{"cancelled overdue", -5 * time.Minute, models.StatusCancelled, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &models.Order{Status: tc.status, ExpectedPickupAt: now.Add(tc.offset).UnixMilli()}
			assert.Equal(t, tc.impending, IsImpendingOverdue(o, from, to))
			assert.Equal(t, tc.overdue, IsActualOverdue(o, now))
		})
	}
}

func TestIsActualOverdue_IgnoresMissingPickupDate(t *testing.T) {
	o := &models.Order{Status: models.StatusProcessing}
	assert.False(t, IsActualOverdue(o, time.Now()))
}

func TestOverdueFilters(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	f := ImpendingOverdueFilter(now, now.Add(time.Hour), true)
	assert.Equal(t, bson.M{"$ne": true}, f["adminNotifiedImpendingOverdue"])
	assert.Equal(t, bson.M{"$nin": models.ClosedStatuses}, f["status"])
	assert.Equal(t, bson.M{"$gte": now.UnixMilli(), "$lte": now.Add(time.Hour).UnixMilli()}, f["expectedPickupAt"])

	f = ActualOverdueFilter(now, false)
	_, flagged := f["adminNotifiedActualOverdue"]
	assert.False(t, flagged)
	assert.Equal(t, bson.M{"$gt": int64(0), "$lt": now.UnixMilli()}, f["expectedPickupAt"])
}

func TestAlertKind(t *testing.T) {
	o := &models.Order{AdminNotifiedActualOverdue: true}
	assert.True(t, AlertActualOverdue.Flagged(o))
	assert.False(t, AlertImpendingOverdue.Flagged(o))
	assert.Equal(t, "adminNotifiedImpendingOverdue", AlertImpendingOverdue.FlagField())
}
