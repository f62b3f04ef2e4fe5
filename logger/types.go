package logger

import "strings"

type Logger interface {
	Trace(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	// Changes logger level to the newLevel
	ChangeLevel(newLevel LogLevel)
}

type LogLevel uint

const (
	NONE LogLevel = iota
	ERROR
	WARNING
	INFO
	DEBUG
	TRACE
)

// LevelFromString is case-insensitive, unknown values map to DEBUG.
func LevelFromString(s string) LogLevel {
	switch strings.ToUpper(s) {
	case "NONE":
		return NONE
	case "ERROR":
		return ERROR
	case "WARNING", "WARN":
		return WARNING
	case "INFO":
		return INFO
	case "DEBUG":
		return DEBUG
	case "TRACE":
		return TRACE

	default:
		return DEBUG
	}
}

func (l LogLevel) String() string {
	switch l {
	case NONE:
		return "NONE"
	case ERROR:
		return "ERROR"
	case WARNING:
		return "WARNING"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}
