package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
)

type (
	ContextLogger struct {
		name       string
		zeroLogger atomic.Pointer[zerolog.Logger]
	}

	Context map[string]interface{}
)

func (c *ContextLogger) update(base zerolog.Logger, level LogLevel, context Context, showGoroutineID bool) {
	zeroLogger := base.Level(toZeroLevel(level)).With().Str("logger", c.name).Logger()
	for key, value := range context {
		zeroLogger = zeroLogger.With().Interface(key, value).Logger()
	}
	if showGoroutineID {
		zeroLogger = zeroLogger.Hook(goRoutineIDHook{})
	}
	c.zeroLogger.Store(&zeroLogger)
}

func (c *ContextLogger) Trace(format string, args ...interface{}) {
	logMessage(c.zeroLogger.Load().Trace(), format, args)
}

func (c *ContextLogger) Debug(format string, args ...interface{}) {
	logMessage(c.zeroLogger.Load().Debug(), format, args)
}

func (c *ContextLogger) Info(format string, args ...interface{}) {
	logMessage(c.zeroLogger.Load().Info(), format, args)
}

func (c *ContextLogger) Warning(format string, args ...interface{}) {
	logMessage(c.zeroLogger.Load().Warn(), format, args)
}

func (c *ContextLogger) Error(format string, args ...interface{}) {
	logMessage(c.zeroLogger.Load().Error(), format, args)
}

// ChangeLevel changes the level of the context logger only, global configuration updates override it.
func (c *ContextLogger) ChangeLevel(newLevel LogLevel) {
	zl := c.zeroLogger.Load().Level(toZeroLevel(newLevel))
	c.zeroLogger.Store(&zl)
}

func logMessage(event *zerolog.Event, format string, args []interface{}) {
	if len(args) == 0 {
		event.Msg(format)
	} else {
		event.Msgf(format, args...)
	}
}

// A hook that adds goroutine ID to the log event
type goRoutineIDHook struct{}

func (h goRoutineIDHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Uint64("GoID", goroutineID())
}

func toZeroLevel(lvl LogLevel) zerolog.Level {
	switch lvl {
	case NONE:
		return zerolog.Disabled
	case TRACE:
		return zerolog.TraceLevel
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		panic(fmt.Sprintf("unknown level: %d", lvl))
	}
}
