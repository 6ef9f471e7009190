package adminnotificationsvc

import (
	"context"
	"fmt"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/adminnotification/models"
	basemodels "github.com/ndip23/pressing-management-system-sub000/internal/api/base/models"
	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminNotificationService lưu trữ cảnh báo nội bộ của admin
type AdminNotificationService struct {
	*basesvc.BaseServiceMongoImpl[models.AdminNotification]
}

// NewAdminNotificationService tạo service từ collection trong registry
func NewAdminNotificationService() (*AdminNotificationService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AdminNotifications)
	if !exist {
		return nil, fmt.Errorf("failed to get admin_notifications collection: %v", common.ErrNotFound)
	}
	return &AdminNotificationService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.AdminNotification](col)}, nil
}

// ExistsUnread kiểm tra admin đã có cảnh báo chưa đọc cùng loại cho đơn này chưa
func (s *AdminNotificationService) ExistsUnread(ctx context.Context, adminID, orderID primitive.ObjectID, notificationType string) (bool, error) {
	return s.DocumentExists(ctx, bson.M{
		"adminId": adminID,
		"orderId": orderID,
		"type":    notificationType,
		"read":    false,
	})
}

// Create lưu cảnh báo mới (chưa đọc)
func (s *AdminNotificationService) Create(ctx context.Context, n models.AdminNotification) (*models.AdminNotification, error) {
	n.Read = false
	created, err := s.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListForAdmin danh sách cảnh báo của admin: chưa đọc trước, mới nhất trước
func (s *AdminNotificationService) ListForAdmin(ctx context.Context, adminID primitive.ObjectID, unreadOnly bool, page, limit int64) (*basemodels.PaginateResult[models.AdminNotification], error) {
	filter := bson.M{"adminId": adminID}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// MarkRead đánh dấu một cảnh báo của admin là đã đọc
func (s *AdminNotificationService) MarkRead(ctx context.Context, adminID, id primitive.ObjectID) (*models.AdminNotification, error) {
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "adminId": adminID}, bson.M{"read": true})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkAllRead đánh dấu toàn bộ cảnh báo chưa đọc của admin là đã đọc, trả về số bản ghi được cập nhật
func (s *AdminNotificationService) MarkAllRead(ctx context.Context, adminID primitive.ObjectID) (int64, error) {
	return s.UpdateMany(ctx, bson.M{"adminId": adminID, "read": false}, bson.M{"read": true})
}
