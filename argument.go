package stmtmock

import (
	"database/sql/driver"
	"reflect"
	"time"
)

// Argument interface allows to match
// any parameter value in specific way when used
// as an expected value in Params.
type Argument interface {
	Match(driver.Value) bool
}

// ArgumentFunc adapts an ordinary function to the Argument interface.
type ArgumentFunc func(driver.Value) bool

func (f ArgumentFunc) Match(v driver.Value) bool { return f(v) }

// AnyArg will return an Argument which can
// match any kind of arguments, nil included.
//
// Useful for generated identifiers or similar kinds of arguments.
func AnyArg() Argument {
	return anyArgument{}
}

type anyArgument struct{}

func (a anyArgument) Match(_ driver.Value) bool {
	return true
}

// AnyTime will return an Argument which matches
// any time.Time value.
func AnyTime() Argument {
	return ArgumentFunc(func(v driver.Value) bool {
		_, ok := v.(time.Time)
		return ok
	})
}

// NotEmptyArg will return an Argument which can
// match any kind of non zero arguments.
//
// Logic by type:
// type     |answer | condition
// -----------------------
// int64     true    v != 0
// float64   true    v != 0.0
// bool      true    any values
// []byte    true    len(v) != 0
// string    true    v != ""
// time.Time true    non zero value
// nil       false
func NotEmptyArg() Argument {
	return notEmptyArgument{}
}

type notEmptyArgument struct{}

func (a notEmptyArgument) Match(v driver.Value) bool {
	if v == nil {
		return false
	}

	switch val := v.(type) {
	case bool:
		return true
	case []byte:
		return len(val) != 0
	case []rune:
		return len(val) != 0
	case time.Time:
		return !val.IsZero()
	default:
		return !reflect.ValueOf(v).IsZero()
	}
}
