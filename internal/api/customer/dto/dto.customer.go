package dto

// CustomerCreateInput dữ liệu tạo khách hàng. Phải có ít nhất phone hoặc email
type CustomerCreateInput struct {
	Name    string `json:"name" validate:"required,max=120,no_xss"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=255"`
}
