package notification

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Render thay thế các token {{tên}} trong template bằng giá trị tương ứng trong vars.
// Token không có trong vars được giữ nguyên. Giá trị nil render thành chuỗi rỗng.
// Token được so khớp nguyên văn nên tên chứa ký tự đặc biệt không mở rộng phạm vi khớp.
func Render(template string, vars map[string]interface{}) string {
	if template == "" || len(vars) == 0 {
		return template
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", Stringify(vars[k]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Stringify chuyển giá trị biến template sang chuỗi. nil và con trỏ nil => "",
// con trỏ khác nil được deref
func Stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	}
	if rv.Kind() == reflect.Ptr {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}
