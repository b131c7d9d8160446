package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for request/response dumps.
	DebugLevel              // DebugLevel is used for cache hits, retries and timings.
	InfoLevel               // InfoLevel is used for startup and lifecycle messages.
	WarnLevel               // WarnLevel is used for degraded panels and upstream hiccups.
	ErrorLevel              // ErrorLevel is used for failures the user will see.
	FatalLevel              // FatalLevel logs and exits the process.
	PanicLevel              // PanicLevel logs and panics.
	NoLevel                 // NoLevel is used when the level is unknown.
)

// Logger is the logging facade shared by every package of the dashboard.
type Logger interface {
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger carrying err.

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level) // SetLevel changes the minimum level that is written.
	GetLevel() Level      // GetLevel returns the minimum level that is written.
}

// ParseLevel maps a textual level ("debug", "info", ...) to a Level.
// Unknown names map to InfoLevel.
func ParseLevel(name string) Level {
	switch name {
	case "disabled", "off":
		return Disabled
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	case "panic":
		return PanicLevel
	default:
		return InfoLevel
	}
}
