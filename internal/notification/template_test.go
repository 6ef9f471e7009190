package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender_ReplacesKnownTokens(t *testing.T) {
	tpl := "Xin chào {{customerName}}, đơn {{receiptNumber}} đã sẵn sàng. {{customerName}}!"
	out := Render(tpl, map[string]interface{}{
		"customerName":  "Ana",
		"receiptNumber": "RCP-20260101-0001",
	})
	assert.Equal(t, "Xin chào Ana, đơn RCP-20260101-0001 đã sẵn sàng. Ana!", out)
}

func TestRender_UnknownTokensRemain(t *testing.T) {
	out := Render("{{a}} {{unknown}}", map[string]interface{}{"a": 1})
	assert.Equal(t, "1 {{unknown}}", out)
}

func TestRender_NilRendersEmpty(t *testing.T) {
	var s *string
	out := Render("[{{x}}][{{y}}]", map[string]interface{}{"x": nil, "y": s})
	assert.Equal(t, "[][]", out)
	assert.NotContains(t, out, "nil")
	assert.NotContains(t, out, "null")
}

func TestRender_TypedNilPointers(t *testing.T) {
	var n *int
	var when *time.Time
	assert.NotPanics(t, func() {
		out := Render("a={{a}} b={{b}}", map[string]interface{}{"a": n, "b": when})
		assert.Equal(t, "a= b=", out)
	})

	v := 7
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	out := Render("{{a}}|{{b}}", map[string]interface{}{"a": &v, "b": &at})
	assert.Equal(t, "7|"+at.String(), out)
}

func TestStringify(t *testing.T) {
	name := "Ana"
	assert.Equal(t, "Ana", Stringify(&name))
	assert.Equal(t, "", Stringify((*string)(nil)))
	assert.Equal(t, "", Stringify((*int)(nil)))
	assert.Equal(t, "12.5", Stringify(12.5))
	assert.Equal(t, "", Stringify(nil))
}

func TestRender_MetacharactersAreLiteral(t *testing.T) {
	vars := map[string]interface{}{"a.b": "X", "c+": "Y", "(.*)": "Z"}
	out := Render("{{a.b}} {{aXb}} {{c+}} {{cc}} {{(.*)}} {{anything}}", vars)
	assert.Equal(t, "X {{aXb}} Y {{cc}} Z {{anything}}", out)
}

func TestRender_NoKnownTokenLeft(t *testing.T) {
	vars := map[string]interface{}{
		"customerName": "Bo", "receiptNumber": "R-1", "companyName": "Pressing",
		"totalAmount": "$10.00", "orderStatus": "Ready for Pickup",
	}
	templates := []string{
		"{{customerName}}{{receiptNumber}}{{companyName}}",
		"Total {{totalAmount}} - {{orderStatus}} - {{missing}}",
		"{{{{customerName}}}}",
		"",
	}
	for _, tpl := range templates {
		out := Render(tpl, vars)
		for k := range vars {
			assert.False(t, strings.Contains(out, "{{"+k+"}}"), "token %s còn sót trong %q", k, out)
		}
	}
	assert.Contains(t, Render(templates[1], vars), "{{missing}}")
}

func TestMethodFor(t *testing.T) {
	assert.Equal(t, MethodWhatsApp, MethodFor(ChannelWhatsApp, false))
	assert.Equal(t, MethodManualEmail, MethodFor(ChannelEmail, true))
	assert.Equal(t, MethodNone, MethodFor(ChannelNone, true))
	assert.True(t, MethodNoContactAuto.IsValid())
	assert.False(t, Method("sms-manual").IsValid())
}
