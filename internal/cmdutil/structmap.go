package cmdutil

import (
	"reflect"
	"strings"
	"time"
	"unicode"
)

// StructToMapOptions configures StructToMap behavior.
type StructToMapOptions struct {
	OmitFields   map[string]bool
	KeyOverrides map[string]string
	// UseJSONTags keys fields by their json tag name when one is set.
	UseJSONTags bool
}

// StructToMap converts a struct into a map keyed by snake_case field names.
// Embedded structs, including embedded pointers, are flattened. Named scalar
// types are reduced to their underlying kind so database drivers accept them.
func StructToMap[T any](value T, opts StructToMapOptions) map[string]any {
	result := make(map[string]any)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return result
		}
		v = v.Elem()
	}

	appendStructFields(v, result, opts)
	return result
}

func appendStructFields(v reflect.Value, result map[string]any, opts StructToMapOptions) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if opts.OmitFields != nil && opts.OmitFields[field.Name] {
			continue
		}

		value := v.Field(i)
		if field.Anonymous {
			if value.Kind() == reflect.Pointer {
				if value.IsNil() {
					continue
				}
				value = value.Elem()
			}
			if value.Kind() == reflect.Struct {
				appendStructFields(value, result, opts)
				continue
			}
		}

		result[fieldKey(field, opts)] = normalizeValue(value)
	}
}

func fieldKey(field reflect.StructField, opts StructToMapOptions) string {
	if override, ok := opts.KeyOverrides[field.Name]; ok {
		return override
	}
	if opts.UseJSONTags {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(field.Name)
}

var timeType = reflect.TypeOf(time.Time{})

func normalizeValue(value reflect.Value) any {
	if !value.IsValid() {
		return nil
	}

	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}

	if value.Type() == timeType {
		return value.Interface().(time.Time).UTC().Format(time.RFC3339)
	}

	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int()
	case reflect.Float32, reflect.Float64:
		return value.Float()
	case reflect.Bool:
		return value.Bool()
	case reflect.Slice:
		if value.Type().Elem().Kind() == reflect.String {
			items := make([]string, value.Len())
			for i := 0; i < value.Len(); i++ {
				items[i] = value.Index(i).String()
			}
			return strings.Join(items, ",")
		}
	}

	return value.Interface()
}

func toSnakeCase(input string) string {
	if input == "" {
		return ""
	}

	runes := []rune(input)
	var builder strings.Builder
	builder.Grow(len(runes) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				builder.WriteRune('_')
			}
		}
		builder.WriteRune(unicode.ToLower(r))
	}

	return builder.String()
}
