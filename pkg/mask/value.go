package mask

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// RawValue normalises a value handed to a field into the string the
// conformance engine works on. Strings, fmt.Stringers and numbers are
// accepted; nil becomes the empty string.
func RawValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	switch typed := v.(type) {
	case string:
		return typed, nil
	case []rune:
		return string(typed), nil
	case fmt.Stringer:
		return typed.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "", nil
		}
		return RawValue(rv.Elem().Interface())
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			break
		}
		return strconv.FormatFloat(f, 'f', -1, rv.Type().Bits()), nil
	}
	return "", fmt.Errorf("mask: value must be a string or a number, received %T: %w", v, ErrInvalidValue)
}
