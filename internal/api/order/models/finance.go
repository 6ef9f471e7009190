package models

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Financials kết quả tính tài chính của đơn
type Financials struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	AmountPaid     decimal.Decimal
	IsFullyPaid    bool
}

// ComputeFinancials tính discount, total, isFullyPaid bằng số thập phân chính xác.
//
//   - percentage: subtotal * value / 100, value bị kẹp trong [0, 100]
//   - fixed: value, không âm
//   - discount không vượt quá subtotal
//   - total = max(0, subtotal - discount)
//   - isFullyPaid = amountPaid >= total, hoặc total == 0
func ComputeFinancials(subtotal float64, discountType DiscountType, discountValue, amountPaid float64) Financials {
	sub := decimal.NewFromFloat(subtotal)
	if sub.IsNegative() {
		sub = decimal.Zero
	}
	value := decimal.NewFromFloat(discountValue)
	paid := decimal.NewFromFloat(amountPaid)

	discount := decimal.Zero
	switch discountType {
	case DiscountPercentage:
		if value.IsNegative() {
			value = decimal.Zero
		}
		if value.GreaterThan(hundred) {
			value = hundred
		}
		discount = sub.Mul(value).Div(hundred)
	case DiscountFixed:
		if value.IsPositive() {
			discount = value
		}
	}
	if discount.GreaterThan(sub) {
		discount = sub
	}
	discount = discount.Round(2)

	total := sub.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	total = total.Round(2)

	return Financials{
		Subtotal:       sub.Round(2),
		DiscountAmount: discount,
		Total:          total,
		AmountPaid:     paid.Round(2),
		IsFullyPaid:    total.IsZero() || paid.GreaterThanOrEqual(total),
	}
}

// SubtotalOf tính tổng tiền các món
func SubtotalOf(items []OrderItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// ApplyFinancials tính lại và ghi các field tài chính lên đơn
func (o *Order) ApplyFinancials() {
	if !o.Discount.Type.IsValid() {
		o.Discount.Type = DiscountNone
	}
	f := ComputeFinancials(o.Subtotal, o.Discount.Type, o.Discount.Value, o.AmountPaid)
	o.Subtotal, _ = f.Subtotal.Float64()
	o.Discount.Amount, _ = f.DiscountAmount.Float64()
	o.TotalAmount, _ = f.Total.Float64()
	o.AmountPaid, _ = f.AmountPaid.Float64()
	o.IsFullyPaid = f.IsFullyPaid
}

// FormatAmount định dạng số tiền với ký hiệu tiền tệ, 2 chữ số thập phân
func FormatAmount(currencySymbol string, amount float64) string {
	return currencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}
