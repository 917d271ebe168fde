package logger

import "log"

// A LoggerOptFn is a functional option configuring a PortageLogger when constructing a new one.
type LoggerOptFn func(*PortageLogger)

// WithEnv sets the environment PortageLogger is operating in.
func WithEnv(env string) func(*PortageLogger) {
	return func(l *PortageLogger) {
		l.env = env
	}
}

// WithLevel sets the log level PortageLogger uses.
func WithLevel(level LogLevel) func(*PortageLogger) {
	return func(l *PortageLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger PortageLogger uses.
func WithLogger(log *log.Logger) func(*PortageLogger) {
	return func(l *PortageLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*PortageLogger) {
	return func(l *PortageLogger) {
		l.skip = skip
	}
}
