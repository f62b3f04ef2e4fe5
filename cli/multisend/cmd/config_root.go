package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/alphabill-multisend/logger"
)

type baseConfiguration struct {
	// The multisend home directory
	HomeDir string
	// Configuration file URL. If it's relative, then it's relative from the HomeDir.
	CfgFile string
	// Logger configuration file URL.
	LogCfgFile string
}

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "MULTISEND"
	// The default name for config file.
	defaultConfigFile = "config.props"
	// the default multisend directory.
	defaultMultisendDir = ".multisend"
	// The default logger configuration file name.
	defaultLoggerConfigFile = "logger-config.yaml"
	// The configuration key for home directory.
	keyHome = "home"
	// The configuration key for config file name.
	keyConfig = "config"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogLevel      = "log-level"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the MULTISEND_HOME for this invocation (default is %s)", multisendHomeDir()))
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $MULTISEND_HOME/%s)", defaultConfigFile))
	cmd.PersistentFlags().StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, defaultLoggerConfigFile, "logger config file URL. Considered absolute if starts with '/'. Otherwise relative from $MULTISEND_HOME.")
	// no default so that the value from logger config file is used unless the flag is set
	cmd.PersistentFlags().String(flagNameLogLevel, "", "logging level, one of: NONE, ERROR, WARNING, INFO, DEBUG, TRACE")
}

func (r *baseConfiguration) initConfigFileLocation() {
	// flag, then env, then default
	if r.HomeDir == "" {
		r.HomeDir = os.Getenv(envKey(keyHome))
		if r.HomeDir == "" {
			r.HomeDir = multisendHomeDir()
		}
	}

	if r.CfgFile == "" {
		r.CfgFile = os.Getenv(envKey(keyConfig))
		if r.CfgFile == "" {
			r.CfgFile = defaultConfigFile
		}
	}
	if !filepath.IsAbs(r.CfgFile) {
		r.CfgFile = filepath.Join(r.HomeDir, r.CfgFile)
	}
}

/*
LoggerCfgFilename always returns non-empty filename - either the value
of the flag set by user or default cfg location.
*/
func (r *baseConfiguration) LoggerCfgFilename() string {
	if !filepath.IsAbs(r.LogCfgFile) {
		return filepath.Join(r.HomeDir, r.LogCfgFile)
	}
	return r.LogCfgFile
}

func (r *baseConfiguration) configFileExists() bool {
	_, err := os.Stat(r.CfgFile)
	return err == nil
}

/*
initLogger applies logger configuration file (when it exists) to the global
logger config, --log-level flag overrides the default level of the file.
Missing file is an error only when user pointed to it explicitly.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) error {
	loggerCfgFile := filepath.Clean(r.LoggerCfgFilename())
	if _, err := os.Stat(loggerCfgFile); err != nil {
		defaultLoggerCfg := filepath.Join(r.HomeDir, defaultLoggerConfigFile)
		if !(errors.Is(err, os.ErrNotExist) && loggerCfgFile == defaultLoggerCfg) {
			return fmt.Errorf("opening logger configuration file: %w", err)
		}
	} else if err := logger.UpdateGlobalConfigFromFile(loggerCfgFile); err != nil {
		return fmt.Errorf("loading logger configuration (%s): %w", loggerCfgFile, err)
	}

	if cmd.Flags().Changed(flagNameLogLevel) {
		level, err := cmd.Flags().GetString(flagNameLogLevel)
		if err != nil {
			return fmt.Errorf("failed to read %s flag value: %w", flagNameLogLevel, err)
		}
		logger.SetDefaultLevel(logger.LevelFromString(level))
	}
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func multisendHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultMultisendDir)
}
