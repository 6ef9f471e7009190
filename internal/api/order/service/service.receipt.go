package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReceiptCounter cấp số biên nhận tăng dần theo ngày bằng $inc nguyên tử trên collection counters
type ReceiptCounter struct {
	collection *mongo.Collection
	prefix     string
}

// NewReceiptCounter tạo bộ đếm từ collection trong registry
func NewReceiptCounter(prefix string) (*ReceiptCounter, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Counters)
	if !exist {
		return nil, fmt.Errorf("failed to get counters collection: %v", common.ErrNotFound)
	}
	return &ReceiptCounter{collection: col, prefix: prefix}, nil
}

// NextReceiptNumber trả về số biên nhận kế tiếp dạng PREFIX-YYYYMMDD-NNNN
func (r *ReceiptCounter) NextReceiptNumber(ctx context.Context, now time.Time) (string, error) {
	key := "receipt:" + models.ReceiptDay(now)
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter models.Counter
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": key}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return "", common.ConvertMongoError(err)
	}
	return models.FormatReceiptNumber(r.prefix, now, counter.Seq), nil
}
