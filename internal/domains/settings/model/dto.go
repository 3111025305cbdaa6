package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdateRequest is a partial set of key/value overrides
type UpdateRequest map[string]interface{}

var errColor = errors.New("اللون يجب أن يبدأ بـ #")

func colorRule(value interface{}) error {
	str, ok := value.(string)
	if !ok || !strings.HasPrefix(str, "#") {
		return errColor
	}
	return nil
}

// Validate rejects unknown keys and malformed colors
func (r UpdateRequest) Validate() error {
	if len(r) == 0 {
		return errors.New("لا توجد إعدادات للتحديث")
	}

	keys := make([]*validation.KeyRules, 0, len(fields))
	for key, f := range fields {
		rules := []validation.Rule{}
		if f.kind == kindColor {
			rules = append(rules, validation.By(colorRule))
		}
		keys = append(keys, validation.Key(key, rules...).Optional())
	}

	return validation.Validate(map[string]interface{}(r), validation.Map(keys...))
}
