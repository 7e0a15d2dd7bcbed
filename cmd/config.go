package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "unrealctl"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	strictFlagName      = "strict"
	buildToolFlagName   = "build-tool"
	packageToolFlagName = "package-tool"
	shellFlagName       = "shell"
	timeoutFlagName     = "timeout"
	dryRunFlagName      = "dry-run"
	formatFlagName      = "format"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"

	strictConfigKey      = "exit.strict"
	buildToolConfigKey   = "tools.build"
	packageToolConfigKey = "tools.package"
	shellConfigKey       = "tools.shell"
	timeoutConfigKey     = "tools.timeout"
	dryRunConfigKey      = "tools.dry_run"
	formatConfigKey      = "show.format"

	defaultStrict      = false
	defaultBuildTool   = "BuildTool.sh"
	defaultPackageTool = "RunUAT.sh"
	defaultShell       = ""
	defaultTimeout     = time.Duration(0)
	defaultFormat      = "text"

	envPrefix = "UNREALCTL"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".unrealctl.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	globalLogger *slog.Logger
	logCloser    io.Closer

	// configReadErr is set when the config file exists but cannot be used.
	configReadErr error
)

// initConfig registers defaults, environment lookup and the optional config file.
func initConfig() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(strictConfigKey, defaultStrict)
	viper.SetDefault(buildToolConfigKey, defaultBuildTool)
	viper.SetDefault(packageToolConfigKey, defaultPackageTool)
	viper.SetDefault(shellConfigKey, defaultShell)
	viper.SetDefault(timeoutConfigKey, defaultTimeout)
	viper.SetDefault(dryRunConfigKey, false)
	viper.SetDefault(formatConfigKey, defaultFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configReadErr = readConfigFile()
}

// readConfigFile loads the optional config file. A missing file is not an error.
func readConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", configFileName, err)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	if logCloser != nil {
		_ = logCloser.Close()
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
	logCloser = logWriter

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	// Defaults, environment and flags still apply without the file.
	if configReadErr != nil {
		slog.Warn("ignoring unreadable config file", "error", configReadErr)
	}
}
