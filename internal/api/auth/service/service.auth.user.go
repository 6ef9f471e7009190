package authsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/auth/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/auth/models"
	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserService danh bạ người dùng theo tenant
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo service từ collection trong registry
func NewUserService() (*UserService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](col)}, nil
}

// Create tạo người dùng cho tenant
func (s *UserService) Create(ctx context.Context, tenantID primitive.ObjectID, input *dto.UserCreateInput) (*models.User, error) {
	user := models.User{
		TenantID: tenantID,
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Role:     input.Role,
	}
	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAdminUserIDs danh sách id admin (không bị khóa) của tenant
func (s *UserService) ListAdminUserIDs(ctx context.Context, tenantID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	users, err := s.Find(ctx, bson.M{"tenantId": tenantID, "role": models.RoleAdmin, "isBlock": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
