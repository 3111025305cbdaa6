package model

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// Resolve overlays persisted rows on the compiled defaults.
// Unknown keys are ignored; malformed values keep the default.
func Resolve(rows map[string]interface{}) SiteSettings {
	s := Defaults()
	for key, raw := range rows {
		f, ok := fields[key]
		if !ok {
			continue
		}
		apply(&s, f, unwrap(raw))
	}
	return s
}

func apply(s *SiteSettings, f field, value interface{}) {
	switch f.kind {
	case kindColor:
		if str, ok := value.(string); ok && strings.HasPrefix(str, "#") {
			*f.text(s) = str
		}
	case kindURL:
		if str, ok := value.(string); ok {
			*f.text(s) = str
		}
	case kindText:
		if str, ok := stringify(value); ok {
			*f.text(s) = str
		}
	case kindBool:
		if b, ok := asBool(value); ok {
			*f.flag(s) = b
		}
	case kindInt:
		if n, ok := asInt(value); ok {
			*f.num(s) = n
		}
	}
}

// unwrap decodes JSON-encoded strings and picks the Arabic side of
// localized {ar, en} objects, then English, then the object itself
func unwrap(raw interface{}) interface{} {
	value := raw
	if str, ok := raw.(string); ok {
		var parsed interface{}
		if err := json.Unmarshal([]byte(str), &parsed); err != nil {
			return str
		}
		value = parsed
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return value
	}
	if ar, ok := obj["ar"]; ok && truthy(ar) {
		return ar
	}
	if en, ok := obj["en"]; ok && truthy(en) {
		return en
	}
	return obj
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	}
	return true
}

func stringify(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	str, err := cast.ToStringE(value)
	return str, err == nil
}

// asBool accepts real booleans and "true"/"false" style strings only
func asBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := cast.ToBoolE(v)
		return b, err == nil
	}
	return false, false
}

func asInt(value interface{}) (int, bool) {
	switch value.(type) {
	case float64, float32, int, int32, int64, json.Number, string:
		n, err := cast.ToIntE(value)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
