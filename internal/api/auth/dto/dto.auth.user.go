package dto

// UserCreateInput dữ liệu tạo người dùng cho tenant
type UserCreateInput struct {
	Name  string `json:"name" validate:"required,max=120,no_xss"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"required,oneof=admin staff"`
}
