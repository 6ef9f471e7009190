package global

import (
	"github.com/go-playground/validator/v10"
	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/ndip23/pressing-management-system-sub000/internal/registry"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users              string // Tên collection cho người dùng (operator/admin)
	Customers          string // Tên collection cho khách hàng
	Orders             string // Tên collection cho đơn hàng
	Settings           string // Tên collection cho cấu hình tenant
	AdminNotifications string // Tên collection cho cảnh báo nội bộ của admin
	DeliveryHistory    string // Tên collection cho lịch sử gửi thông báo khách hàng
	Counters           string // Tên collection cho bộ đếm số biên nhận theo ngày
}

// Các biến toàn cục
var Validate *validator.Validate                                            // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                           // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                              // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
