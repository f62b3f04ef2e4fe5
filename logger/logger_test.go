package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeLines parses JSON log output, one event per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		ev := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		events = append(events, ev)
	}
	return events
}

func useBuffer(t *testing.T, cfg GlobalConfig) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.Writer = buf
	UpdateGlobalConfig(cfg)
	t.Cleanup(func() { UpdateGlobalConfig(developerConfiguration()) })
	return buf
}

func TestLevelFromString(t *testing.T) {
	require.Equal(t, NONE, LevelFromString("NONE"))
	require.Equal(t, ERROR, LevelFromString("error"))
	require.Equal(t, WARNING, LevelFromString("WARN"))
	require.Equal(t, WARNING, LevelFromString("WARNING"))
	require.Equal(t, INFO, LevelFromString("Info"))
	require.Equal(t, TRACE, LevelFromString("TRACE"))
	require.Equal(t, DEBUG, LevelFromString("foo"))
	require.Equal(t, "WARNING", WARNING.String())
}

func TestContextLogger_levels(t *testing.T) {
	buf := useBuffer(t, GlobalConfig{DefaultLevel: WARNING})
	l := Create("levels-test")
	l.Debug("not logged")
	l.Info("not logged %d", 1)
	l.Warning("warning %d", 2)
	l.Error("error")

	events := decodeLines(t, buf)
	require.Len(t, events, 2)
	require.Equal(t, "warning 2", events[0]["message"])
	require.Equal(t, "warn", events[0]["level"])
	require.Equal(t, "levels_test", events[0]["logger"])
	require.Equal(t, "error", events[1]["message"])
}

func TestContextLogger_ChangeLevel(t *testing.T) {
	buf := useBuffer(t, GlobalConfig{DefaultLevel: ERROR})
	l := Create("change-level")
	l.Info("not logged")
	l.ChangeLevel(TRACE)
	l.Trace("trace")
	events := decodeLines(t, buf)
	require.Len(t, events, 1)
	require.Equal(t, "trace", events[0]["message"])
}

func TestPackageLevels(t *testing.T) {
	buf := useBuffer(t, GlobalConfig{DefaultLevel: ERROR, PackageLevels: map[string]LogLevel{"verbose": DEBUG}})
	Create("verbose").Debug("from verbose")
	Create("quiet").Debug("from quiet")
	events := decodeLines(t, buf)
	require.Len(t, events, 1)
	require.Equal(t, "from verbose", events[0]["message"])
}

func TestSetContext(t *testing.T) {
	buf := useBuffer(t, GlobalConfig{DefaultLevel: INFO})
	l := Create("context")
	SetContext("cmd", "calculate")
	defer ClearContext("cmd")
	l.Info("with context")
	events := decodeLines(t, buf)
	require.Len(t, events, 1)
	require.Equal(t, "calculate", events[0]["cmd"])
}

func TestCreate_returnsSameLogger(t *testing.T) {
	require.Same(t, Create("same-name"), Create("same name"))
}

func TestCreateForPackage(t *testing.T) {
	buf := useBuffer(t, GlobalConfig{DefaultLevel: INFO})
	CreateForPackage().Info("named after package")
	events := decodeLines(t, buf)
	require.Len(t, events, 1)
	require.Equal(t, "logger", events[0]["logger"])
}

func TestPackageNameResolver_packageOf(t *testing.T) {
	r := &PackageNameResolver{BasePackage: basePackage}
	require.Equal(t, "txsystem/multisend", r.packageOf("github.com/alphabill-org/alphabill-multisend/txsystem/multisend.init"))
	require.Equal(t, "cli/multisend/cmd", r.packageOf("github.com/alphabill-org/alphabill-multisend/cli/multisend/cmd.(*app).Execute"))
	require.Equal(t, "example.com/other/pkg", r.packageOf("example.com/other/pkg.Func"))
}

func TestUpdateGlobalConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "out.log")
	cfgFile := filepath.Join(dir, "logger-config.yaml")
	cfg := "defaultLevel: ERROR\npackageLevels:\n  from_file: DEBUG\noutputPath: " + logFile + "\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0600))

	require.NoError(t, UpdateGlobalConfigFromFile(cfgFile))
	t.Cleanup(func() { UpdateGlobalConfig(developerConfiguration()) })
	Create("from-file").Debug("to file")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")

	require.ErrorContains(t, UpdateGlobalConfigFromFile(filepath.Join(dir, "missing.yaml")), "failed to read logger config file")
}
