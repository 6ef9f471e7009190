package common

import "net/http"

// Mã HTTP dùng trong response. Alias của net/http để handler không phải import thêm
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusUnprocessable       = http.StatusUnprocessableEntity
	StatusInternalServerError = http.StatusInternalServerError
	StatusServiceUnavailable  = http.StatusServiceUnavailable
)

const (
	MsgSuccess         = "Thao tác thành công"
	MsgCreated         = "Tạo mới thành công"
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode mã lỗi trả về trong field "code" của response
type ErrorCode struct {
	Code        string // SYS_001, VAL_001, ...
	Category    string
	SubCategory string
	Description string
}

func code(c, category, sub, desc string) ErrorCode {
	return ErrorCode{Code: c, Category: category, SubCategory: sub, Description: desc}
}

var (
	ErrCodeInternalServer = code("SYS_001", "System", "Internal", "Lỗi hệ thống nội bộ")
	ErrCodeAuth           = code("AUTH", "Authentication", "General", "Thiếu thông tin định danh (tenant / user)")

	ErrCodeValidationInput  = code("VAL_001", "Validation", "Input", "Lỗi dữ liệu đầu vào")
	ErrCodeValidationFormat = code("VAL_002", "Validation", "Format", "Lỗi định dạng dữ liệu")

	ErrCodeDatabase           = code("DB", "Database", "General", "Lỗi cơ sở dữ liệu chung")
	ErrCodeDatabaseConnection = code("DB_001", "Database", "Connection", "Lỗi kết nối cơ sở dữ liệu")
	ErrCodeDatabaseQuery      = code("DB_002", "Database", "Query", "Lỗi truy vấn dữ liệu")

	ErrCodeBusinessState     = code("BIZ_001", "Business", "State", "Chuyển trạng thái đơn không hợp lệ")
	ErrCodeBusinessOperation = code("BIZ_002", "Business", "Operation", "Lỗi thao tác nghiệp vụ")

	// Không gửi được thông báo cho khách qua kênh nào
	ErrCodeNotificationDelivery = code("NOTIF_001", "Notification", "Delivery", "Không gửi được thông báo qua bất kỳ kênh nào")
)
