package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphabill-org/alphabill-multisend/logger"
)

func TestConfigFile(t *testing.T) {
	home := t.TempDir()
	doc := writeTestFile(t, home, "doc.yaml", singleTransferYAML)
	writeTestFile(t, home, defaultConfigFile, "output-format=yaml\n")

	t.Run("value from config file", func(t *testing.T) {
		out, err := execute(t, "check", "-i", doc, "--home", home)
		require.NoError(t, err)
		require.Equal(t, "accepted: true\n", out)
	})

	t.Run("flag overrides config file", func(t *testing.T) {
		out, err := execute(t, "check", "-i", doc, "--home", home, "--output-format", "json")
		require.NoError(t, err)
		require.JSONEq(t, `{"accepted": true}`, out)
	})

	t.Run("explicit config file", func(t *testing.T) {
		cfg := writeTestFile(t, t.TempDir(), "custom.props", "output-format=cbor\n")
		out, err := execute(t, "check", "-i", doc, "--config", cfg)
		require.NoError(t, err)
		// {"accepted": true}
		require.Equal(t, "a1686163636570746564f5\n", out)
	})
}

func TestEnvironment(t *testing.T) {
	home := t.TempDir()
	doc := writeTestFile(t, home, "doc.yaml", singleTransferYAML)
	t.Setenv("MULTISEND_HOME", home)
	t.Setenv("MULTISEND_OUTPUT_FORMAT", "yaml")

	app := New()
	out, err := executeApp(t, app, "check", "-i", doc)
	require.NoError(t, err)
	require.Equal(t, "accepted: true\n", out)
	require.Equal(t, home, app.baseConfig.HomeDir)
	require.Equal(t, filepath.Join(home, defaultConfigFile), app.baseConfig.CfgFile)
}

func TestLoggerConfig(t *testing.T) {
	home := t.TempDir()
	doc := writeTestFile(t, home, "doc.yaml", singleTransferYAML)

	t.Run("missing default logger config is fine", func(t *testing.T) {
		_, err := execute(t, "check", "-i", doc, "--home", home)
		require.NoError(t, err)
	})

	t.Run("missing explicit logger config", func(t *testing.T) {
		_, err := execute(t, "check", "-i", doc, "--home", home, "--logger-config", "nope.yaml")
		require.ErrorContains(t, err, "initializing logger: opening logger configuration file")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("logger config and level flag", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "multisend.log")
		t.Cleanup(func() {
			logger.UpdateGlobalConfig(logger.GlobalConfig{DefaultLevel: logger.WARNING, Writer: os.Stderr, ConsoleFormat: true})
		})
		writeTestFile(t, home, defaultLoggerConfigFile, "defaultLevel: WARNING\noutputPath: "+logFile+"\nconsoleFormat: false\n")
		_, err := execute(t, "calculate", "-i", doc, "--home", home, "--log-level", "INFO")
		require.NoError(t, err)
		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "transaction accepted, 3 accounts changed")
	})
}
