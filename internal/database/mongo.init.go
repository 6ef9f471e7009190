package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections đảm bảo các collection cần thiết tồn tại trong database.
func EnsureCollections(db *mongo.Database, names []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range names {
		if name == "" || have[name] {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	logger.GetAppLogger().Infof("Collections are ensured in database: %s", db.Name())
	return nil
}

// indexSpec mô tả một index được đọc từ struct tag `index`
type indexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseOrder trích xuất thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(part map[string]string) int {
	if part["order"] == "-1" {
		return -1
	}
	return 1
}

// parseIndexTag phân tách tag index, ví dụ "single:1;compound:tenant_status,order:-1"
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// indexSpecsFromModel đọc struct tag `index` của model và trả về danh sách index cần có.
// Hỗ trợ: single, unique (+sparse), ttl:<giây>, compound:<tên group> (group chứa "_unique" => unique).
func indexSpecsFromModel(model interface{}) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []indexSpec
	compoundGroups := map[string]bson.D{}
	var compoundOrder []string

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["single"]; ok {
				order := 1
				if cfg["single"] == "-1" {
					order = -1
				}
				name := bsonField + "_single"
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: order}}, Options: options.Index().SetName(name)})
			}
			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if _, sparse := cfg["sparse"]; sparse {
					opts = opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ: %w", err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
			}
			if group, ok := cfg["compound"]; ok && group != "" {
				if _, seen := compoundGroups[group]; !seen {
					compoundOrder = append(compoundOrder, group)
				}
				compoundGroups[group] = append(compoundGroups[group], bson.E{Key: bsonField, Value: parseOrder(cfg)})
			}
		}
	}

	for _, group := range compoundOrder {
		opts := options.Index().SetName(group)
		if strings.Contains(group, "_unique") {
			opts = opts.SetUnique(true)
		}
		specs = append(specs, indexSpec{Name: group, Keys: compoundGroups[group], Options: opts})
	}
	return specs, nil
}

// CreateIndexes tạo các index khai báo trong struct tag của model, bỏ qua index đã tồn tại.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	log := logger.GetAppLogger().WithField("collection", collection.Name())

	specs, err := indexSpecsFromModel(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bool{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = true
		}
	}

	for _, spec := range specs {
		if existing[spec.Name] {
			log.Debugf("Index %s đã tồn tại, bỏ qua", spec.Name)
			continue
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.Infof("Đã tạo index: %s", spec.Name)
	}
	return nil
}
