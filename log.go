package stmtmock

import "github.com/golang/glog"

// Logger receives diagnostic messages about registrations,
// lookups and matching problems.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// verbosity at which informational messages are written to glog
const logVerbosity = 2

type glogLogger struct{}

func (glogLogger) Infof(format string, args ...interface{}) {
	glog.V(logVerbosity).Infof(format, args...)
}

func (glogLogger) Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// DefaultLogger writes warnings to glog and everything else
// at verbosity level 2.
var DefaultLogger Logger = glogLogger{}
