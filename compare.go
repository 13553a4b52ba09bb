package stmtmock

import (
	"bytes"
	"database/sql/driver"
	"reflect"
	"time"
)

// ParamsMatch reports whether the actual parameters satisfy the expected ones.
//
// With exact set, both mappings must hold the same keys and every value must
// be equivalent. Otherwise every expected key must be present in actual with
// an equivalent value, and actual may carry additional parameters.
func ParamsMatch(expected, actual Params, exact bool) bool {
	if exact {
		if len(actual) != len(expected) {
			return false
		}
		for k, v := range actual {
			ev, ok := expected[k]
			if !ok {
				return false
			}
			if !CompareParameter(v, ev) {
				return false
			}
		}
		return true
	}

	for k, ev := range expected {
		v, ok := actual[k]
		if !ok {
			return false
		}
		if !CompareParameter(v, ev) {
			return false
		}
	}
	return true
}

// CompareParameter reports whether an actual bound value is equivalent to the
// expected one. If expected is an Argument, it decides. Numbers compare by
// value regardless of their Go type, so int(5) is equivalent to int64(5) and
// float64(5). Byte and rune slices compare element-wise.
func CompareParameter(actual, expected driver.Value) bool {
	if matcher, ok := expected.(Argument); ok {
		return matcher.Match(actual)
	}
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	switch ev := expected.(type) {
	case []byte:
		av, ok := actual.([]byte)
		return ok && bytes.Equal(av, ev)
	case []rune:
		av, ok := actual.([]rune)
		return ok && equalRunes(av, ev)
	case time.Time:
		av, ok := actual.(time.Time)
		return ok && av.Equal(ev)
	}

	vi := reflect.ValueOf(actual)
	ai := reflect.ValueOf(expected)
	if isNumber(vi.Kind()) && isNumber(ai.Kind()) {
		return numbersEqual(vi, ai)
	}
	return reflect.DeepEqual(actual, expected)
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isNumber(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func numbersEqual(a, b reflect.Value) bool {
	switch {
	case isFloat(a.Kind()) || isFloat(b.Kind()):
		return toFloat(a) == toFloat(b)
	case isInt(a.Kind()) && isInt(b.Kind()):
		return a.Int() == b.Int()
	case isUint(a.Kind()) && isUint(b.Kind()):
		return a.Uint() == b.Uint()
	case isInt(a.Kind()):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	default:
		return b.Int() >= 0 && uint64(b.Int()) == a.Uint()
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v.Kind()):
		return float64(v.Int())
	case isUint(v.Kind()):
		return float64(v.Uint())
	}
	return v.Float()
}
