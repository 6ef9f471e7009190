package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error lỗi nghiệp vụ kèm HTTP status, được HandleResponse render thành envelope JSON
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return e.Message
}

// Is: hai lỗi bằng nhau khi cùng mã và cùng message, để errors.Is dùng được với các sentinel
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code.Code == other.Code.Code && e.Message == other.Message
}

func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{Code: code, Message: message, StatusCode: statusCode, Details: details}
}

var (
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)
	ErrMissingTenant = NewError(ErrCodeAuth, "Thiếu X-Tenant-ID", StatusUnauthorized, nil)
	ErrMissingUser   = NewError(ErrCodeAuth, "Thiếu X-User-ID", StatusUnauthorized, nil)

	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)
	ErrTimeout    = NewError(ErrCodeDatabaseConnection, "Truy vấn MongoDB bị timeout", StatusServiceUnavailable, nil)
)

// NewNotificationError lỗi gửi thông báo thủ công thất bại; reason là lý do Dispatcher trả về
func NewNotificationError(reason string, details any) error {
	return NewError(ErrCodeNotificationDelivery, reason, StatusUnprocessable, details)
}

// ConvertMongoError chuẩn hóa lỗi driver Mongo thành *Error. Lỗi đã là *Error thì giữ nguyên
func ConvertMongoError(err error) error {
	var appErr *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	case mongo.IsTimeout(err):
		return ErrTimeout
	case mongo.IsNetworkError(err):
		return ErrConnection
	}
	return NewError(ErrCodeDatabase, "Lỗi tương tác với cơ sở dữ liệu", StatusInternalServerError, err.Error())
}
