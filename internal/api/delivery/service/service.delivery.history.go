package deliverysvc

import (
	"context"
	"fmt"

	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/delivery/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeliveryHistoryService ghi và đọc lịch sử gửi thông báo cho khách
type DeliveryHistoryService struct {
	*basesvc.BaseServiceMongoImpl[models.DeliveryHistory]
}

// NewDeliveryHistoryService tạo service từ collection trong registry
func NewDeliveryHistoryService() (*DeliveryHistoryService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryHistory)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_history collection: %v", common.ErrNotFound)
	}
	return &DeliveryHistoryService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.DeliveryHistory](col)}, nil
}

// Record lưu một bản ghi lịch sử
func (s *DeliveryHistoryService) Record(ctx context.Context, h models.DeliveryHistory) error {
	_, err := s.InsertOne(ctx, h)
	return err
}

// ListForOrder lấy lịch sử gửi của một đơn, mới nhất trước
func (s *DeliveryHistoryService) ListForOrder(ctx context.Context, tenantID, orderID primitive.ObjectID) ([]models.DeliveryHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	return s.Find(ctx, bson.M{"tenantId": tenantID, "orderId": orderID}, opts)
}
