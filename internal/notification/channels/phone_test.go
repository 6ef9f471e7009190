package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		cc   string
		want string
	}{
		{"10 chữ số có dấu gạch", "555-123-4567", "1", "+15551234567"},
		{"có ngoặc và khoảng trắng", "(555) 123 4567", "1", "+15551234567"},
		{"đã có mã quốc gia", "15551234567", "1", "+15551234567"},
		{"đã có dấu cộng", "+237 6 71 23 45 67", "1", "+237671234567"},
		{"tiền tố 00", "0044 20 7946 0958", "1", "+442079460958"},
		{"trunk prefix 0", "05551234567", "1", "+15551234567"},
		{"mã quốc gia nhiều chữ số", "6 71 23 45 67 8", "237", "+2376712345678"},
		{"số nội địa 9 chữ số", "677123456", "237", "+237677123456"},
		{"đã có mã 237 nhưng thiếu dấu cộng", "237677123456", "237", "+237677123456"},
		{"số Anh có trunk 0", "020 7946 0958", "44", "+442079460958"},
		{"số Anh đã có mã 44", "442079460958", "44", "+442079460958"},
		{"số Đức 11 chữ số", "30 12345678", "49", "+493012345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.raw, tc.cc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhone_NoDefaultCountryCode(t *testing.T) {
	_, err := NormalizePhone("677123456", "")
	assert.Error(t, err)

	got, err := NormalizePhone("+237677123456", "")
	require.NoError(t, err)
	assert.Equal(t, "+237677123456", got)
}

func TestNormalizePhone_Invalid(t *testing.T) {
	for _, raw := range []string{"abc", "", "   ", "12345", "+1234", "123456789012345678"} {
		_, err := NormalizePhone(raw, "1")
		assert.Error(t, err, "input %q phải lỗi", raw)
	}
}
