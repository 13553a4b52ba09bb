package stmtmock

import (
	"database/sql/driver"
	"reflect"
)

// PassthroughValueConverter hands values of the sampled types to the
// driver unchanged and converts everything else with
// driver.DefaultParameterConverter.
type PassthroughValueConverter struct {
	passthrough map[reflect.Type]struct{}
}

// NewPassthroughValueConverter creates a converter passing values of the
// same type as any of typeSamples through.
func NewPassthroughValueConverter(typeSamples ...interface{}) *PassthroughValueConverter {
	c := &PassthroughValueConverter{passthrough: make(map[reflect.Type]struct{}, len(typeSamples))}
	for _, sample := range typeSamples {
		c.passthrough[reflect.TypeOf(sample)] = struct{}{}
	}
	return c
}

// ConvertValue implements driver.ValueConverter.
func (c *PassthroughValueConverter) ConvertValue(v interface{}) (driver.Value, error) {
	if _, ok := c.passthrough[reflect.TypeOf(v)]; ok {
		return v, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}
