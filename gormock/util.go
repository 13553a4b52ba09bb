package gormock

type TestingTB interface {
	// Name Returns current test name.
	Name() string
	Cleanup(f func())
	Logf(fmt string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Errorf(message string, args ...interface{})
}

// tbLogger reports mock registrations and misses in the test log.
type tbLogger struct {
	tb TestingTB
}

func (l tbLogger) Infof(format string, args ...interface{}) {
	l.tb.Logf(format, args...)
}

func (l tbLogger) Warningf(format string, args ...interface{}) {
	l.tb.Logf("WARNING: "+format, args...)
}
