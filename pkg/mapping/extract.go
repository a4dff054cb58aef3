// Package mapping converts decoded JSON documents from the Freesound API into
// the DTOs of package model.
//
// Extraction never fails: a field that is missing, explicitly null, or of the
// wrong shape for the requested type is reported as absent.
package mapping

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"
)

// Object is a decoded JSON object. Numbers are expected to be json.Number
// (decoder.UseNumber) but float64 values from a plain decode are accepted too.
type Object = map[string]any

// Array is a decoded JSON array.
type Array = []any

// DateLayout is the timestamp format used by the API. Timestamps carry no
// offset and are in UTC.
const DateLayout = "2006-01-02T15:04:05"

// Field extracts the value of field from obj converted to T. Supported types
// are string, int, int64, float32, float64, bool, Object, Array and any (the
// raw decoded value). The second result is false when obj is nil, the field is
// missing or null, or the value cannot be converted.
func Field[T any](obj Object, field string) (T, bool) {
	var out T
	if obj == nil {
		return out, false
	}
	raw, ok := obj[field]
	if !ok || raw == nil {
		return out, false
	}
	if !convert(raw, &out) {
		slog.Debug("field type mismatch", "field", field, "want", fmt.Sprintf("%T", out), "got", fmt.Sprintf("%T", raw))
		return out, false
	}
	return out, true
}

// Ptr is Field returning a pointer, nil when absent.
func Ptr[T any](obj Object, field string) *T {
	v, ok := Field[T](obj, field)
	if !ok {
		return nil
	}
	return &v
}

// String is Field[string] with absence mapped to "".
func String(obj Object, field string) string {
	v, _ := Field[string](obj, field)
	return v
}

func convert(raw any, dst any) bool {
	switch p := dst.(type) {
	case *string:
		s, ok := raw.(string)
		*p = s
		return ok
	case *int:
		n, ok := toInt64(raw)
		*p = int(n)
		return ok
	case *int64:
		n, ok := toInt64(raw)
		*p = n
		return ok
	case *float32:
		f, ok := toFloat64(raw)
		if !ok {
			return false
		}
		// Round trip through the shortest decimal form so that e.g. 0.1 maps to
		// float32(0.1) and not to the float32 nearest the float64 bit pattern.
		f32, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 64), 32)
		if err != nil {
			return false
		}
		*p = float32(f32)
		return true
	case *float64:
		f, ok := toFloat64(raw)
		*p = f
		return ok
	case *bool:
		b, ok := raw.(bool)
		*p = b
		return ok
	case *Object:
		o, ok := raw.(map[string]any)
		*p = o
		return ok
	case *Array:
		a, ok := raw.([]any)
		*p = a
		return ok
	case *any:
		*p = raw
		return true
	default:
		return false
	}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Dictionary flattens a JSON object of string values into a map. Keys whose
// value is not a string map to "". A nil object yields an empty map.
func Dictionary(obj Object) map[string]string {
	out := make(map[string]string, len(obj))
	for key := range obj {
		out[key] = String(obj, key)
	}
	return out
}

// Strings converts a JSON array of strings into a slice, skipping null and
// non-string elements. A nil array yields an empty slice.
func Strings(arr Array) []string {
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Items converts a JSON array of objects into DTOs using item. Null slots and
// elements that are not objects are skipped.
func Items[R any](arr Array, item Mapper[Object, R]) []R {
	out := make([]R, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			if el != nil {
				slog.Debug("skipping malformed list item", "index", i, "type", fmt.Sprintf("%T", el))
			}
			continue
		}
		out = append(out, item.Map(obj))
	}
	return out
}

// ParseDate parses an API timestamp in UTC. Trailing text after the seconds
// (fractional seconds, an offset) is ignored. Nil is returned for an empty or
// unparseable value.
func ParseDate(s string) *time.Time {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		slog.Debug("unparseable date", "value", s, "error", err)
		return nil
	}
	return &t
}
