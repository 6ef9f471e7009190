package models

import (
	"fmt"
	"time"
)

// DefaultReceiptPrefix tiền tố biên nhận mặc định
const DefaultReceiptPrefix = "RCP"

// ReceiptDay trả về khóa ngày YYYYMMDD dùng cho bộ đếm
func ReceiptDay(t time.Time) string {
	return t.Format("20060102")
}

// FormatReceiptNumber tạo số biên nhận dạng PREFIX-YYYYMMDD-NNNN
func FormatReceiptNumber(prefix string, day time.Time, seq int64) string {
	if prefix == "" {
		prefix = DefaultReceiptPrefix
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, ReceiptDay(day), seq)
}
