package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tracery-dev/tracery"
	filestore "github.com/tracery-dev/tracery/internal/adapters/file"
	redisadapter "github.com/tracery-dev/tracery/internal/adapters/redis"
	"github.com/tracery-dev/tracery/internal/logging"
	"github.com/tracery-dev/tracery/pkg/adapters/remote"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// RunOptions contains the shared configuration for the CLI commands.
type RunOptions struct {
	RegistryPath string
	URL          string
	MaxDepth     int
	Debug        bool
	LogFile      string
	NoCache      bool
	CacheDir     string
	RedisAddr    string
	RedisPrefix  string
	RedisTTL     time.Duration
}

// OptionsFromConfig fills unset fields from the config file and environment.
func (o *RunOptions) OptionsFromConfig() {
	if o.RegistryPath == "" {
		o.RegistryPath = viper.GetString(registryConfigKey)
	}
	if o.URL == "" {
		o.URL = viper.GetString(urlConfigKey)
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = viper.GetInt(maxDepthConfigKey)
	}
	if o.CacheDir == "" {
		o.CacheDir = viper.GetString(cacheDirConfigKey)
	}
	if o.RedisAddr == "" {
		o.RedisAddr = viper.GetString(redisAddrConfigKey)
	}
	if o.RedisPrefix == "" {
		o.RedisPrefix = viper.GetString(redisPrefixConfigKey)
	}
	if o.RedisTTL == 0 {
		o.RedisTTL = viper.GetDuration(redisTTLConfigKey)
	}
}

// CreateLogger configures the command logger.
// In debug mode it writes to stderr (to separate diagnostics from stdout output);
// with a log file it rotates through the file sink instead.
func CreateLogger(opts RunOptions) *slog.Logger {
	if opts.LogFile != "" {
		return ConfigureFileLogger(opts.LogFile, opts.Debug)
	}
	if opts.Debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// CreateEngine initializes a Tracery engine with standard CLI conventions.
// Extra options are applied last and win over the derived ones.
func CreateEngine(opts RunOptions, logger *slog.Logger, extra ...tracery.Option) (*tracery.Engine, error) {
	engineOpts := []tracery.Option{tracery.WithLogger(logger)}

	if opts.Debug {
		engineOpts = append(engineOpts, tracery.WithBuildHooks(createDebugHooks(logger)))
	}

	if opts.MaxDepth > 0 {
		engineOpts = append(engineOpts, tracery.WithMaxDepth(opts.MaxDepth))
	}

	// 1. Source: a live reflection endpoint wins over a registry document.
	registryPath := opts.RegistryPath
	if opts.URL != "" {
		engineOpts = append(engineOpts, tracery.WithSource(remote.New(opts.URL)))
		registryPath = ""
	} else {
		path, err := resolveRegistryPath(".", registryPath)
		if err != nil {
			return nil, err
		}
		registryPath = path
	}

	// 2. Store: redis-backed catalogue cache when configured, otherwise a
	// local directory cache when one is set.
	switch {
	case opts.NoCache:
	case opts.RedisAddr != "":
		storeOpts := []redisadapter.Option{}
		if opts.RedisPrefix != "" {
			storeOpts = append(storeOpts, redisadapter.WithPrefix(opts.RedisPrefix))
		}
		if opts.RedisTTL > 0 {
			storeOpts = append(storeOpts, redisadapter.WithTTL(opts.RedisTTL))
		}
		store := redisadapter.New(
			opts.RedisAddr,
			viper.GetString(redisPasswordConfigKey),
			viper.GetInt(redisDBConfigKey),
			storeOpts...,
		)
		engineOpts = append(engineOpts,
			tracery.WithStore(store),
			tracery.WithLocker(store.Locker()),
		)
	case opts.CacheDir != "":
		engineOpts = append(engineOpts, tracery.WithStore(filestore.New(opts.CacheDir)))
	}

	// 3. Initialize
	engineOpts = append(engineOpts, extra...)
	engine, err := tracery.New(registryPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// registryCandidates are probed in order when no --registry flag is given.
var registryCandidates = []string{
	"registry.json",
	"registry.yaml",
	"registry.yml",
	"tracery.json",
}

// resolveRegistryPath applies the smart default: an explicit path is used
// as-is, otherwise dir is probed for well-known document names.
func resolveRegistryPath(dir, path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, candidate := range registryCandidates {
		full := filepath.Join(dir, candidate)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("no registry document found (pass --registry, --url, or create one of %v)", registryCandidates)
}

// createDebugHooks wires traversal callbacks to debug logging.
func createDebugHooks(logger *slog.Logger) domain.BuildHooks {
	return domain.BuildHooks{
		OnPathBuilt: func(path string, status domain.MutationStatus) {
			logger.Debug("Path Built", "path", path, "status", status)
		},
		OnKnowledgeHit: func(t schema.TypeID) {
			logger.Debug("Knowledge Hit", "type", t)
		},
		OnDepthLimit: func(t schema.TypeID, depth int) {
			logger.Debug("Depth Limit", "type", t, "depth", depth)
		},
	}
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
