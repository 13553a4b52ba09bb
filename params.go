package stmtmock

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// Key identifies a bound statement parameter, either
// by its 1-based position or by name.
type Key struct {
	Ordinal int
	Name    string
}

// Pos returns the key of the positional parameter i,
// where the first parameter is 1.
func Pos(i int) Key {
	return Key{Ordinal: i}
}

// Named returns the key of a named parameter.
func Named(name string) Key {
	return Key{Name: name}
}

func (k Key) String() string {
	if k.Name != "" {
		return ":" + k.Name
	}
	return fmt.Sprintf("$%d", k.Ordinal)
}

// Params maps parameter keys to bound values.
type Params map[Key]driver.Value

// Args builds positional Params from a value list:
// values[0] is bound to Pos(1), values[1] to Pos(2) and so on.
func Args(values ...driver.Value) Params {
	params := make(Params, len(values))
	for i, v := range values {
		params[Pos(i+1)] = v
	}
	return params
}

// NamedArgs converts arguments handed to a driver into Params.
// Named arguments are keyed by name, all others by ordinal.
func NamedArgs(args []driver.NamedValue) Params {
	params := make(Params, len(args))
	for _, arg := range args {
		if arg.Name != "" {
			params[Named(arg.Name)] = arg.Value
			continue
		}
		params[Pos(arg.Ordinal)] = arg.Value
	}
	return params
}

// Clone returns a copy of the mapping. Values are shared.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// transforms to debuggable printable string, positional keys first
func (p Params) String() string {
	keys := make([]Key, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i].Name == "") != (keys[j].Name == "") {
			return keys[i].Name == ""
		}
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Ordinal < keys[j].Ordinal
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%+v", k, p[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
