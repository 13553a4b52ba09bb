package stmtmock

import (
	"database/sql/driver"
	"errors"
)

// ValueConverterOption allows to create a mock connection
// with a custom ValueConverter to support drivers with special data types.
func ValueConverterOption(converter driver.ValueConverter) func(*Mock) error {
	return func(m *Mock) error {
		if converter == nil {
			return errors.New("stmtmock: value converter must not be nil")
		}
		m.converter = converter
		return nil
	}
}

// MatchConfigOption sets how statements and parameters are matched.
func MatchConfigOption(cfg MatchConfig) func(*Mock) error {
	return func(m *Mock) error {
		m.SetConfig(cfg)
		return nil
	}
}

// LoggerOption replaces the logger the mock reports registrations,
// misses and invalid patterns to.
func LoggerOption(logger Logger) func(*Mock) error {
	return func(m *Mock) error {
		if logger == nil {
			return errors.New("stmtmock: logger must not be nil")
		}
		m.SetLogger(logger)
		return nil
	}
}
