package customersvc

import (
	"context"
	"fmt"
	"strings"

	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/customer/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/customer/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerService CRUD khách hàng theo tenant
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[models.Customer]
}

// NewCustomerService tạo service từ collection trong registry
func NewCustomerService() (*CustomerService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("failed to get customers collection: %v", common.ErrNotFound)
	}
	return &CustomerService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Customer](col)}, nil
}

// Create tạo khách hàng mới cho tenant
func (s *CustomerService) Create(ctx context.Context, tenantID primitive.ObjectID, input *dto.CustomerCreateInput) (*models.Customer, error) {
	customer := models.Customer{
		TenantID: tenantID,
		Name:     strings.TrimSpace(input.Name),
		Phone:    strings.TrimSpace(input.Phone),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Address:  strings.TrimSpace(input.Address),
	}
	if !customer.HasContact() {
		logger.WithContext(ctx).WithField("tenantId", tenantID.Hex()).Warn("👤 [CUSTOMER] Khách hàng không có phone lẫn email, sẽ không nhận được thông báo")
	}
	created, err := s.InsertOne(ctx, customer)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetForTenant lấy khách hàng theo ID trong phạm vi tenant
func (s *CustomerService) GetForTenant(ctx context.Context, tenantID, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}, nil)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByID lấy khách hàng theo ID (dùng nội bộ khi đã có đơn hàng thuộc tenant)
func (s *CustomerService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
