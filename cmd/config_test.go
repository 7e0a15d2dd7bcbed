package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "unrealctl", configBaseName)
	assert.Equal(t, "unrealctl.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "tools.build", buildToolConfigKey)
	assert.Equal(t, "tools.package", packageToolConfigKey)
	assert.Equal(t, "tools.shell", shellConfigKey)
	assert.Equal(t, "tools.timeout", timeoutConfigKey)
	assert.Equal(t, "exit.strict", strictConfigKey)
	assert.Equal(t, "UNREALCTL", envPrefix)
}

func TestConfigDefaults(t *testing.T) {
	resetConfig(t)

	assert.Equal(t, 1, viper.GetInt(configVersionKey))
	assert.False(t, viper.GetBool(strictConfigKey))
	assert.Equal(t, "BuildTool.sh", viper.GetString(buildToolConfigKey))
	assert.Equal(t, "RunUAT.sh", viper.GetString(packageToolConfigKey))
	assert.Empty(t, viper.GetString(shellConfigKey))
	assert.Equal(t, time.Duration(0), viper.GetDuration(timeoutConfigKey))
	assert.Equal(t, "text", viper.GetString(formatConfigKey))
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	resetConfig(t)
	t.Setenv("UNREALCTL_TOOLS_PACKAGE", "/opt/UE/Engine/Build/BatchFiles/RunUAT.sh")
	t.Setenv("UNREALCTL_TOOLS_TIMEOUT", "90m")

	assert.Equal(t, "/opt/UE/Engine/Build/BatchFiles/RunUAT.sh", viper.GetString(packageToolConfigKey))
	assert.Equal(t, 90*time.Minute, viper.GetDuration(timeoutConfigKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestReadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		wantKey string
	}{
		{"missing file", "", false, "BuildTool.sh"},
		{"valid file", "tools:\n  build: /opt/UE/BuildTool.sh\n", false, "/opt/UE/BuildTool.sh"},
		{"malformed file", "tools: [build\n", true, "BuildTool.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)

			dir := t.TempDir()
			t.Chdir(dir)

			if tt.content != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(tt.content), 0o600))
			}

			viper.Reset()
			initConfig()

			if tt.wantErr {
				require.Error(t, configReadErr)
				assert.Contains(t, configReadErr.Error(), configFileName)
			} else {
				require.NoError(t, configReadErr)
			}

			assert.Equal(t, tt.wantKey, viper.GetString(buildToolConfigKey))
		})
	}
}

func TestConfigureLogger_WarnsAboutUnreadableConfig(t *testing.T) {
	resetConfig(t)

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("exit: [strict\n"), 0o600))

	viper.Reset()
	initConfig()

	logPath := filepath.Join(t.TempDir(), "unrealctl.log")
	configureLogger(logPath, false)
	require.NoError(t, logCloser.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ignoring unreadable config file")
	assert.False(t, viper.GetBool(strictConfigKey))
}
