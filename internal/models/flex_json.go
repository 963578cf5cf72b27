package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMaps caches JSON tag -> struct field index mappings per struct type.
var (
	fieldMaps   = map[reflect.Type]map[string]int{}
	fieldMapsMu sync.RWMutex
)

func getFieldMap(t reflect.Type) map[string]int {
	fieldMapsMu.RLock()
	m, ok := fieldMaps[t]
	fieldMapsMu.RUnlock()
	if ok {
		return m
	}

	m = make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		m[name] = i
	}

	fieldMapsMu.Lock()
	fieldMaps[t] = m
	fieldMapsMu.Unlock()
	return m
}

// DecodeFlexible unmarshals JSON into a struct pointer, accepting both
// string-encoded and native JSON values for numeric and boolean fields.
// Upstream match APIs are inconsistent about number encoding across
// endpoints and API versions; this coerces quoted values transparently
// and drops explicit nulls so required counters keep their zero defaults.
func DecodeFlexible(data []byte, v any) error {
	// Fast path: standard unmarshal works when all types match natively.
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("flex unmarshal: target must be a struct pointer")
	}
	elem := rv.Elem()
	fieldMap := getFieldMap(elem.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := elem.Field(idx)
		if !fv.CanSet() {
			continue
		}

		if string(rawVal) == "null" {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric/bool — coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
		}
	}

	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.5" → truncate to int
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseFloat(s, 64); err == nil && n >= 0 {
			fv.SetUint(uint64(n))
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			fv.SetBool(b)
		}
	case reflect.String:
		fv.SetString(s)
	}
}
