package cli

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tracery-dev/tracery/internal/logging"
)

const (
	configBaseName   = "tracery"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	registryConfigKey = "registry"
	urlConfigKey      = "url"
	maxDepthConfigKey = "max_depth"
	cacheDirConfigKey = "cache.dir"

	redisAddrConfigKey     = "redis.addr"
	redisPasswordConfigKey = "redis.password"
	redisDBConfigKey       = "redis.db"
	redisPrefixConfigKey   = "redis.prefix"
	redisTTLConfigKey      = "redis.ttl"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	envPrefix = "TRACERY"

	defaultMaxDepth      = 10
	defaultLogFilename   = ".tracery.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(registryConfigKey, "")
	viper.SetDefault(urlConfigKey, "")
	viper.SetDefault(maxDepthConfigKey, defaultMaxDepth)
	viper.SetDefault(cacheDirConfigKey, "")

	viper.SetDefault(redisAddrConfigKey, "")
	viper.SetDefault(redisPasswordConfigKey, "")
	viper.SetDefault(redisDBConfigKey, 0)
	viper.SetDefault(redisPrefixConfigKey, "")
	viper.SetDefault(redisTTLConfigKey, "0s")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// ConfigureFileLogger points the global slog logger at a rotating file sink.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func ConfigureFileLogger(logPath string, verbose bool) *slog.Logger {
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
		logLevel = logging.ParseLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logger := logging.NewFileLogger(logPath, logLevel, logging.Rotation{
		MaxSizeMB:  viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAgeDays: viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	})
	slog.SetDefault(logger)
	return logger
}
