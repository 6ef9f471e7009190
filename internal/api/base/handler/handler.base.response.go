package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONResponse ghi JSON với charset utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(statusCode).JSON(data)
}

func envelope(code interface{}, message string, status string) fiber.Map {
	return fiber.Map{"code": code, "message": message, "status": status}
}

// SafeHandler chạy handler, panic được chuyển thành 500 theo envelope chung
func SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("🔥 [HTTP] Panic trong handler: %v", r)
		err = HandleResponse(c, nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r), common.StatusInternalServerError, nil))
	}()
	return handler()
}

// HandleResponse: lỗi *common.Error -> {code, message, details, status:"error"};
// lỗi khác -> 500; thành công -> {code:200, message, data, status:"success"}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err == nil {
		body := envelope(common.StatusOK, common.MsgSuccess, "success")
		body["data"] = data
		return JSONResponse(c, common.StatusOK, body)
	}

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		logger.WithRequest(c).WithError(err).Error("🌐 [HTTP] Lỗi không phân loại")
		return JSONResponse(c, common.StatusInternalServerError, envelope(common.ErrCodeInternalServer.Code, err.Error(), "error"))
	}
	body := envelope(appErr.Code.Code, appErr.Message, "error")
	body["details"] = appErr.Details
	return JSONResponse(c, appErr.StatusCode, body)
}

// HandleCreated trả về 201 cho thao tác tạo mới
func HandleCreated(c fiber.Ctx, data interface{}) error {
	body := envelope(common.StatusCreated, common.MsgCreated, "success")
	body["data"] = data
	return JSONResponse(c, common.StatusCreated, body)
}

// ParseBody bind JSON body vào input rồi validate bằng global.Validate
func ParseBody(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Body(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	if global.Validate != nil {
		if err := global.Validate.Struct(input); err != nil {
			return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// ParseObjectID đọc path param dạng ObjectID
func ParseObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("%s không phải ObjectID hợp lệ", name), common.StatusBadRequest, nil)
	}
	return id, nil
}

// ParsePagination đọc page/limit từ query, mặc định 1/20, limit tối đa 100
func ParsePagination(c fiber.Ctx) (page, limit int64) {
	page, _ = strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
