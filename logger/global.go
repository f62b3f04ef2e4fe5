package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeLocation = "Local"
	basePackage         = "alphabill-org/alphabill-multisend"
)

type (
	GlobalConfig struct {
		DefaultLevel LogLevel
		// PackageLevels overrides DefaultLevel for loggers with matching name
		PackageLevels   map[string]LogLevel
		Writer          io.Writer
		ConsoleFormat   bool
		ShowCaller      bool
		TimeLocation    string
		ShowGoroutineID bool
	}

	globalFactory struct {
		sync.Mutex
		config               GlobalConfig
		base                 zerolog.Logger
		loggers              map[string]*ContextLogger
		context              Context
		consoleTimeFormat    string
		callerSkipFrames     int // how many frames to skip to get real caller. Not meant to be changed by callers.
		packageNameResolver  *PackageNameResolver
		nonAlphaNumericRegex *regexp.Regexp
	}
)

// Singleton for managing application wide logging.
var globalFactoryImpl = newGlobalFactory()

func newGlobalFactory() *globalFactory {
	gf := &globalFactory{
		loggers:              make(map[string]*ContextLogger),
		context:              make(Context),
		consoleTimeFormat:    "15:04:05.000000",
		callerSkipFrames:     4,
		packageNameResolver:  &PackageNameResolver{BasePackage: basePackage},
		nonAlphaNumericRegex: regexp.MustCompile(`[^a-zA-Z0-9]`),
	}
	// filtering is done by the per logger levels
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	gf.updateFromConfig(developerConfiguration())
	return gf
}

// developerConfiguration logs to stderr so that it doesn't mix with command output written to stdout.
func developerConfiguration() GlobalConfig {
	return GlobalConfig{
		DefaultLevel:  INFO,
		PackageLevels: map[string]LogLevel{},
		Writer:        os.Stderr,
		ConsoleFormat: true,
		TimeLocation:  defaultTimeLocation,
	}
}

// SetContext sets context for all loggers
func SetContext(key string, value interface{}) {
	globalFactoryImpl.setContext(key, value)
}

// ClearContext will clear a context key from all loggers
func ClearContext(key string) {
	globalFactoryImpl.clearContext(key)
}

// CreateForPackage creates logger named after the caller package.
func CreateForPackage() Logger {
	return globalFactoryImpl.create(globalFactoryImpl.packageNameResolver.PackageName())
}

// Create creates custom named logger
func Create(name string) Logger {
	return globalFactoryImpl.create(name)
}

// UpdateGlobalConfig updates global config and all the loggers created so far.
func UpdateGlobalConfig(config GlobalConfig) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.updateFromConfig(config)
}

// UpdateGlobalConfigFromFile reads the file and parses it as YAML. Global logger configuration is updated accordingly.
// In case of an error, logger won't be updated.
func UpdateGlobalConfigFromFile(fileName string) error {
	conf, err := loadGlobalConfigFromFile(fileName)
	if err != nil {
		return err
	}
	UpdateGlobalConfig(conf)
	return nil
}

// SetDefaultLevel changes the level of all loggers which do not have package specific level.
func SetDefaultLevel(level LogLevel) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	cfg := globalFactoryImpl.config
	cfg.DefaultLevel = level
	globalFactoryImpl.updateFromConfig(cfg)
}

func loadGlobalConfigFromFile(fileName string) (GlobalConfig, error) {
	type LoggerConfiguration struct {
		DefaultLevel    string            `yaml:"defaultLevel"`
		PackageLevels   map[string]string `yaml:"packageLevels"`
		OutputPath      string            `yaml:"outputPath"`
		ConsoleFormat   bool              `yaml:"consoleFormat"`
		ShowCaller      bool              `yaml:"showCaller"`
		TimeLocation    string            `yaml:"timeLocation"`
		ShowGoroutineID bool              `yaml:"showGoroutineID"`
	}

	yamlFile, err := os.ReadFile(filepath.Clean(fileName))
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("failed to read logger config file: %w", err)
	}
	config := &LoggerConfiguration{}
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return GlobalConfig{}, fmt.Errorf("failed to unmarshal logger config: %w", err)
	}

	globalConfig := GlobalConfig{
		DefaultLevel:    LevelFromString(config.DefaultLevel),
		PackageLevels:   make(map[string]LogLevel),
		Writer:          os.Stderr,
		ConsoleFormat:   config.ConsoleFormat,
		ShowCaller:      config.ShowCaller,
		TimeLocation:    config.TimeLocation,
		ShowGoroutineID: config.ShowGoroutineID,
	}
	switch config.OutputPath {
	case "", "stderr":
	case "stdout":
		globalConfig.Writer = os.Stdout
	case "discard":
		globalConfig.Writer = io.Discard
	default:
		file, err := os.OpenFile(config.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // -rw-------
		if err != nil {
			return GlobalConfig{}, fmt.Errorf("failed to open log file: %w", err)
		}
		globalConfig.Writer = file
	}
	for k, v := range config.PackageLevels {
		globalConfig.PackageLevels[k] = LevelFromString(v)
	}
	return globalConfig, nil
}

// Sets context for all loggers
func (gf *globalFactory) setContext(key string, value interface{}) {
	gf.Lock()
	defer gf.Unlock()

	gf.context[key] = value
	gf.updateAllLoggers()
}

// Will clear a context key from all loggers
func (gf *globalFactory) clearContext(key string) {
	gf.Lock()
	defer gf.Unlock()

	delete(gf.context, key)
	gf.updateAllLoggers()
}

func (gf *globalFactory) updateFromConfig(config GlobalConfig) {
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	gf.config = config
	if config.TimeLocation != "" {
		gf.updateTimeLocation(config.TimeLocation)
	}
	gf.updateOutputFormat()
	gf.updateAllLoggers()
}

func (gf *globalFactory) updateTimeLocation(location string) {
	loc, err := time.LoadLocation(location)
	if err != nil {
		// Fallback to default
		loc, _ = time.LoadLocation(defaultTimeLocation)
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}
}

func (gf *globalFactory) updateOutputFormat() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var base zerolog.Logger
	if gf.config.ConsoleFormat {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:          gf.config.Writer,
			TimeFormat:   gf.consoleTimeFormat,
			FormatCaller: formatCallerShort,
		}).With().Timestamp().Logger()
	} else {
		base = zerolog.New(gf.config.Writer).With().Timestamp().Logger()
	}
	if gf.config.ShowCaller {
		base = base.With().CallerWithSkipFrameCount(gf.callerSkipFrames).Logger()
	}
	gf.base = base
}

func (gf *globalFactory) updateAllLoggers() {
	for name, logger := range gf.loggers {
		logger.update(gf.base, gf.loggerLevel(name), gf.context, gf.config.ShowGoroutineID)
	}
}

func (gf *globalFactory) create(name string) Logger {
	gf.Lock()
	defer gf.Unlock()

	normName := gf.normalizeName(name)
	if logger, ok := gf.loggers[normName]; ok {
		return logger
	}
	// log levels can be configured per logger name, by convention loggers are named after the package
	cl := &ContextLogger{name: normName}
	cl.update(gf.base, gf.loggerLevel(normName), gf.context, gf.config.ShowGoroutineID)
	gf.loggers[normName] = cl
	return cl
}

func (gf *globalFactory) normalizeName(name string) string {
	return gf.nonAlphaNumericRegex.ReplaceAllString(name, "_")
}

func (gf *globalFactory) loggerLevel(loggerName string) LogLevel {
	if level, ok := gf.config.PackageLevels[loggerName]; ok {
		return level
	}
	return gf.config.DefaultLevel
}
