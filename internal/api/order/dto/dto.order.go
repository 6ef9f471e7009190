package dto

// OrderItemInput một món đồ khi tạo đơn
type OrderItemInput struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Service   string  `json:"service" validate:"omitempty,max=60"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// DiscountInput giảm giá khi tạo đơn
type DiscountInput struct {
	Type  string  `json:"type" validate:"discount_type"`
	Value float64 `json:"value" validate:"gte=0"`
}

// OrderCreateInput dữ liệu tạo đơn. Subtotal chỉ dùng khi không có Items
type OrderCreateInput struct {
	CustomerID       string           `json:"customerId" validate:"required,len=24,hexadecimal"`
	Items            []OrderItemInput `json:"items" validate:"omitempty,dive"`
	Subtotal         float64          `json:"subtotal" validate:"gte=0"`
	Discount         DiscountInput    `json:"discount"`
	AmountPaid       float64          `json:"amountPaid" validate:"gte=0"`
	ExpectedPickupAt int64            `json:"expectedPickupAt" validate:"required,gt=0"` // Unix milli
	Notes            string           `json:"notes" validate:"omitempty,max=1000,no_xss"`
}

// OrderStatusUpdateInput đổi trạng thái đơn
type OrderStatusUpdateInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderPaymentInput ghi nhận một khoản thanh toán
type OrderPaymentInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// OrderNotifyInput nhắc khách thủ công; Variables là biến bổ sung cho template
type OrderNotifyInput struct {
	Variables map[string]string `json:"variables,omitempty"`
}
