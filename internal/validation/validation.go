// Package validation is the declarative form-rule engine used by the quote
// and contact forms.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Rule describes the checks for one field. Zero values disable a check.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	// PatternMessage overrides the generic "<Field> format is invalid".
	PatternMessage string
	// Custom returns a non-empty message when the value is rejected.
	Custom func(value string) string
}

type Rules map[string]Rule

// Errors maps a field name to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	PhonePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)
)

// CommonRules are the field rules shared by the site forms.
var CommonRules = Rules{
	"email": {
		Required:       true,
		Pattern:        EmailPattern,
		PatternMessage: "Please enter a valid email address",
	},
	"name": {
		Required:  true,
		MinLength: 2,
		MaxLength: 50,
	},
	"phone": {
		Pattern:        PhonePattern,
		PatternMessage: "Please enter a valid phone number",
	},
	"message": {
		Required:  true,
		MinLength: 10,
		MaxLength: 1000,
	},
	"company": {
		MaxLength: 100,
	},
}

// QuoteRules validates the customer and shipping fields of a quote request.
func QuoteRules() Rules {
	return Rules{
		"name":             CommonRules["name"],
		"email":            CommonRules["email"],
		"phone":            CommonRules["phone"],
		"company":          CommonRules["company"],
		"country":          {Required: true},
		"shipping_address": {Required: true},
	}
}

func ContactRules() Rules {
	return Rules{
		"name":    CommonRules["name"],
		"email":   CommonRules["email"],
		"phone":   CommonRules["phone"],
		"company": CommonRules["company"],
		"message": CommonRules["message"],
	}
}

// ValidateField returns the first failing message for value, or "".
// Checks run in order: required, min length, max length, pattern, custom.
// Only the required check applies to blank values.
func ValidateField(name, value string, rule Rule) string {
	label := Label(name)
	value = strings.TrimSpace(value)

	if value == "" {
		if rule.Required {
			return label + " is required"
		}
		return ""
	}

	n := utf8.RuneCountInString(value)
	if rule.MinLength > 0 && n < rule.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", label, rule.MinLength)
	}
	if rule.MaxLength > 0 && n > rule.MaxLength {
		return fmt.Sprintf("%s must be no more than %d characters", label, rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		if rule.PatternMessage != "" {
			return rule.PatternMessage
		}
		return label + " format is invalid"
	}
	if rule.Custom != nil {
		return rule.Custom(value)
	}
	return ""
}

// ValidateForm checks every field that has a rule. Fields without a rule are
// ignored and a missing field is validated as empty.
func ValidateForm(data map[string]string, rules Rules) (Errors, bool) {
	errs := Errors{}
	for name, rule := range rules {
		if msg := ValidateField(name, data[name], rule); msg != "" {
			errs[name] = msg
		}
	}
	return errs, len(errs) == 0
}

// Label turns a field name like "shipping_address" into "Shipping address".
func Label(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
