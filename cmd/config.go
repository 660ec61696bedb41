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

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "paulitrace"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"
	injectFlagName   = "inject"
	patternFlagName  = "pattern"
	untilFlagName    = "until"
	parallelFlagName = "parallel"
	kindsFlagName    = "kinds"
	spreadFlagName   = "spreading"
	formatFlagName   = "format"
	writeFlagName    = "write"
	qubitsFlagName   = "qubits"
	saveFlagName     = "save"

	sweepParallelKey = "sweep.parallel"
	sweepKindsKey    = "sweep.kinds"
	tuiQubitsKey     = "tui.qubits"
	tuiSavePathKey   = "tui.save_path"

	outputText = "text"
	outputJSON = "json"

	defaultOutput        = outputText
	defaultSweepParallel = 0
	defaultSweepKinds    = "XYZ"
	defaultTUIQubits     = 3
	defaultTUISavePath   = "circuit.qasm"

	envPrefix = "PAULITRACE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".paulitrace.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configErr is a failed read of paulitrace.yaml, reported by the root
// command before any subcommand runs.
var configErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutput)
	viper.SetDefault(sweepParallelKey, defaultSweepParallel)
	viper.SetDefault(sweepKindsKey, defaultSweepKinds)
	viper.SetDefault(tuiQubitsKey, defaultTUIQubits)
	viper.SetDefault(tuiSavePathKey, defaultTUISavePath)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = loadConfig()
}

// loadConfig reads paulitrace.yaml from the working directory. A missing
// file is not an error.
func loadConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("reading %s: %w", configFileName, err)
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

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the global slog logger. Records always go to a
// rotating log file; when echo is non-nil they are also written there.
//
// By default it logs at the configured level; verbose forces Debug.
func configureLogger(logPath string, verbose bool, echo io.Writer) {
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

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	opts := &slog.HandlerOptions{AddSource: true, Level: logLevel}
	var handler slog.Handler = slog.NewTextHandler(logWriter, opts)

	if echo != nil {
		handler = slogmulti.Fanout(
			handler,
			slog.NewTextHandler(echo, &slog.HandlerOptions{Level: logLevel}),
		)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
