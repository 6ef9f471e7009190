package basesvc

import (
	"context"
	"time"

	basemodels "github.com/ndip23/pressing-management-system-sub000/internal/api/base/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseServiceMongoImpl CRUD generic trên một collection. Mọi lỗi driver đều qua
// common.ConvertMongoError; timestamp ghi dạng Unix milli
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

func nowMilli() int64 { return time.Now().UnixMilli() }

// toDocument chuyển model sang bson.M, bỏ _id rỗng để Mongo tự sinh
func toDocument(data interface{}) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, common.ErrInvalidFormat
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok && id.IsZero() {
		delete(doc, "_id")
	}
	return doc, nil
}

// InsertOne tạo mới một bản ghi, tự gán createdAt/updatedAt (Unix milli)
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	doc, err := toDocument(data)
	if err != nil {
		return zero, err
	}
	doc["createdAt"], doc["updatedAt"] = nowMilli(), nowMilli()

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}
	err := s.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả bản ghi theo điều kiện lọc, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// FindWithPagination tìm bản ghi có phân trang (page bắt đầu từ 1)
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(items, page, limit, total), nil
}

// UpdateOne cập nhật một document ($set + updatedAt) và trả về bản sau cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, set bson.M) (T, error) {
	var zero T
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = nowMilli()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated T
	if err := s.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return updated, nil
}

// UpdateMany cập nhật nhiều document ($set + updatedAt), trả về số document đã sửa
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, set bson.M) (int64, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = nowMilli()

	result, err := s.collection.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// Upsert cập nhật hoặc tạo mới document khớp filter ($set + $setOnInsert createdAt)
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, set bson.M) (T, error) {
	var zero T
	if set == nil {
		set = bson.M{}
	}
	now := nowMilli()
	set["updatedAt"] = now
	update := bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result T
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// DocumentExists kiểm tra có ít nhất một document khớp filter
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
