package docstore

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"
)

// TimeLayout is the fixed-width UTC layout timestamps are persisted with, so
// that lexical and chronological order agree in every backend.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Encode converts a value to its persisted JSON-compatible form.
func Encode(v any) any {
	switch x := v.(type) {
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	case []string:
		return append([]string(nil), x...)
	case nil, string, bool, int, int64, float64:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return Encode(rv.Elem().Interface())
	}
	return v
}

// EncodeData applies Encode to every field.
func EncodeData(d Data) Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = Encode(v)
	}
	return out
}

// String reads a string field, returning "" when absent or of another type.
func (d Data) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// StringPtr reads an optional string field.
func (d Data) StringPtr(key string) *string {
	s, ok := d[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Bool reads a bool field. Integer 0/1, as returned by SQLite, is accepted.
func (d Data) Bool(key string) bool {
	switch x := d[key].(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	}
	return false
}

// IntPtr reads an optional integer field. JSON numbers decode as float64.
func (d Data) IntPtr(key string) *int {
	var i int
	switch x := d[key].(type) {
	case int:
		i = x
	case int64:
		i = int(x)
	case float64:
		i = int(math.Round(x))
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return nil
		}
		i = int(n)
	default:
		return nil
	}
	return &i
}

// Int reads an integer field, returning 0 when absent.
func (d Data) Int(key string) int {
	if p := d.IntPtr(key); p != nil {
		return *p
	}
	return 0
}

// Strings reads a string list field.
func (d Data) Strings(key string) []string {
	switch x := d[key].(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, v := range x {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// TimePtr reads an optional timestamp stored either as time.Time or as a string.
func (d Data) TimePtr(key string) *time.Time {
	switch x := d[key].(type) {
	case time.Time:
		t := x.UTC()
		return &t
	case string:
		for _, layout := range []string{TimeLayout, time.RFC3339Nano} {
			if t, err := time.Parse(layout, x); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}

// Time reads a timestamp field, returning the zero time when absent.
func (d Data) Time(key string) time.Time {
	if t := d.TimePtr(key); t != nil {
		return *t
	}
	return time.Time{}
}

// Compare orders two persisted values: nil sorts lowest, then booleans,
// numbers and strings, each compared naturally. Mixed kinds compare by kind.
func Compare(a, b any) int {
	ka, kb := kind(a), kind(b)
	if ka != kb {
		return ka - kb
	}
	switch ka {
	case kindBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case kindNumber:
		fa, fb := number(a), number(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case kindString:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

// Equal reports whether two persisted values are equal.
func Equal(a, b any) bool {
	ka, kb := kind(a), kind(b)
	if ka != kb || ka == kindOther {
		return false
	}
	return Compare(a, b) == 0
}

const (
	kindNil = iota
	kindBool
	kindNumber
	kindString
	kindOther
)

func kind(v any) int {
	switch v.(type) {
	case nil:
		return kindNil
	case bool:
		return kindBool
	case int, int64, float64:
		return kindNumber
	case string:
		return kindString
	}
	return kindOther
}

func number(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return 0
}
