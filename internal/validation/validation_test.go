package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		rule  Rule
		want  string
	}{
		{"required empty", "email", "", CommonRules["email"], "Email is required"},
		{"required blank", "email", "   ", CommonRules["email"], "Email is required"},
		{"bad email", "email", "not-an-email", CommonRules["email"], "Please enter a valid email address"},
		{"good email", "email", "buyer@example.com", CommonRules["email"], ""},
		{"name too short", "name", "A", CommonRules["name"], "Name must be at least 2 characters"},
		{"name too long", "name", strings.Repeat("a", 51), CommonRules["name"], "Name must be no more than 50 characters"},
		{"name ok", "name", "Ann", CommonRules["name"], ""},
		{"optional phone empty", "phone", "", CommonRules["phone"], ""},
		{"phone ok", "phone", "+15551234567", CommonRules["phone"], ""},
		{"phone leading zero", "phone", "0555", CommonRules["phone"], "Please enter a valid phone number"},
		{"company too long", "company", strings.Repeat("c", 101), CommonRules["company"], "Company must be no more than 100 characters"},
		{"message short", "message", "hi there", CommonRules["message"], "Message must be at least 10 characters"},
		{"underscore label", "shipping_address", "", Rule{Required: true}, "Shipping address is required"},
		{"generic pattern", "zip", "abc", Rule{Pattern: PhonePattern}, "Zip format is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.field, tt.value, tt.rule))
		})
	}
}

func TestValidateField_CustomRunsLast(t *testing.T) {
	calls := 0
	rule := Rule{
		MinLength: 3,
		Custom: func(v string) string {
			calls++
			if v == "blocked" {
				return "Value is not allowed"
			}
			return ""
		},
	}

	assert.Equal(t, "Code must be at least 3 characters", ValidateField("code", "ab", rule))
	assert.Equal(t, 0, calls)
	assert.Equal(t, "Value is not allowed", ValidateField("code", "blocked", rule))
	assert.Equal(t, "", ValidateField("code", "", rule))
	assert.Equal(t, 1, calls)
}

func TestValidateForm_Quote(t *testing.T) {
	errs, ok := ValidateForm(map[string]string{
		"name":  "Ann Buyer",
		"email": "ann@",
	}, QuoteRules())

	assert.False(t, ok)
	assert.Equal(t, Errors{
		"email":            "Please enter a valid email address",
		"country":          "Country is required",
		"shipping_address": "Shipping address is required",
	}, errs)
	assert.Equal(t,
		"validation failed: country: Country is required; email: Please enter a valid email address; shipping_address: Shipping address is required",
		errs.Error())
}

func TestValidateForm_Valid(t *testing.T) {
	errs, ok := ValidateForm(map[string]string{
		"name":             "Ann Buyer",
		"email":            "ann@example.com",
		"country":          "India",
		"shipping_address": "12 Harbour Road",
		"unknown":          "ignored",
	}, QuoteRules())

	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestContactRules(t *testing.T) {
	_, ok := ValidateForm(map[string]string{
		"name":    "Ann",
		"email":   "ann@example.com",
		"message": "Need 200kg of onion flakes",
	}, ContactRules())
	assert.True(t, ok)
}
