package channels

import (
	"fmt"
	"strings"
)

// NormalizePhone chuẩn hóa số điện thoại về dạng quốc tế E.164 (+<mã quốc gia><số>).
//
// Quy tắc sau khi bỏ mọi ký tự không phải chữ số:
//   - số bắt đầu bằng "+" hoặc "00": coi là đã có mã quốc gia
//   - bắt đầu bằng "0" (trunk prefix nội địa): bỏ "0" rồi thêm mã quốc gia mặc định
//   - đã bắt đầu bằng mã quốc gia mặc định: chỉ thêm "+"
//   - còn lại là số nội địa: thêm mã quốc gia mặc định
//
// Kết quả luôn phải có 8-15 chữ số (giới hạn E.164)
func NormalizePhone(raw, defaultCountryCode string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	cc := onlyDigits(defaultCountryCode)

	digits := onlyDigits(trimmed)
	if digits == "" {
		return "", fmt.Errorf("phone number %q contains no digits", raw)
	}

	switch {
	case strings.HasPrefix(trimmed, "+"):
		return withPlus(digits, raw)
	case strings.HasPrefix(digits, "00"):
		return withPlus(digits[2:], raw)
	}

	if cc == "" {
		return "", fmt.Errorf("phone number %q has no country code and no default country code is configured", raw)
	}

	switch {
	case digits[0] == '0':
		return withPlus(cc+strings.TrimLeft(digits, "0"), raw)
	case strings.HasPrefix(digits, cc) && len(digits) >= 8 && len(digits) <= 15:
		return withPlus(digits, raw)
	}
	return withPlus(cc+digits, raw)
}

func withPlus(digits, raw string) (string, error) {
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("phone number %q has unexpected length %d", raw, len(digits))
	}
	return "+" + digits, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
