//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

// Package config provides configuration management for biomcheck
// using [Viper] for flexible configuration sources.
//
// Configuration can be provided via:
//   - YAML configuration files
//   - Environment variables with the BIOM_ prefix
//   - Programmatic defaults
//
// # Configuration File
//
// By default, biomcheck looks for biomcheck-config.yaml in the current
// directory. Override the location using environment variables:
//
//	BIOM_CONFIG_PATH=/etc/biomcheck
//	BIOM_CONFIG_FILENAME=production-config
//
// Example configuration file:
//
//	log:
//	  level: ".:info"
//	format:
//	  version: "1.0.0"
//	report:
//	  detailed: false
//	serve:
//	  port: 9000
//
// # Environment Variables
//
// All configuration keys can be set via environment variables with the
// BIOM_ prefix. Dots in key names become underscores:
//
//	BIOM_LOG_LEVEL=.:debug
//	BIOM_FORMAT_VERSION=1.0.0
//	BIOM_REPORT_DETAILED=true
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/biocore/biomcheck/internal/logging"
	"github.com/biocore/biomcheck/pkg/biom"
)

// Environment variable and default path constants for configuration loading.
const (
	// EnvVarPrefix is the prefix for all biomcheck environment
	// variables. For example, the key "log.level" becomes BIOM_LOG_LEVEL.
	EnvVarPrefix string = "BIOM"

	// ConfigPathEnv is the environment variable that specifies the
	// directory containing the configuration file.
	ConfigPathEnv string = "BIOM_CONFIG_PATH"

	// ConfigFileNameEnv is the environment variable that specifies the
	// configuration file name (without extension).
	ConfigFileNameEnv string = "BIOM_CONFIG_FILENAME"

	// ConfigDefaultPath is the default directory to search for config files.
	ConfigDefaultPath string = "."

	// ConfigDefaultFilename is the default configuration file name
	// (without extension).
	ConfigDefaultFilename string = "biomcheck-config"
)

// Configuration key constants for use with [VConfig].
const (
	logLevel string = "log.level"

	// FormatVersion is the exact 'format' string JSON tables are
	// expected to declare.
	//
	// Default: "1.0.0"
	// Set via environment: BIOM_FORMAT_VERSION=1.0.0
	FormatVersion string = "format.version"

	// DetailedReport enables narrative progress lines in validation
	// reports.
	//
	// Default: false
	// Set via environment: BIOM_REPORT_DETAILED=true
	DetailedReport string = "report.detailed"

	// ServePort is the TCP port the validation service listens on.
	//
	// Default: 9000
	// Set via environment: BIOM_SERVE_PORT=9000
	ServePort string = "serve.port"
)

var (
	once     sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig is the global Viper configuration instance for biomcheck.
	//
	// Use the configuration key constants ([FormatVersion],
	// [DetailedReport], etc.) to access specific settings:
	//
	//	if config.VConfig.GetBool(config.DetailedReport) {
	//	    // narrative reporting enabled
	//	}
	//
	// VConfig is initialized automatically when [Load] or [Init] is called.
	VConfig *viper.Viper
	logger  = logging.GetLogger("biomcheck.config")
)

// Init initializes the configuration system without loading config
// files: file paths and names, BIOM_ environment variable handling,
// and defaults for all configuration keys.
//
// Safe to call multiple times; subsequent calls are no-ops. Most
// callers want [Load], which calls Init itself.
func Init() {
	once.Do(doInitialize)
}

func getConfigPath() string {
	if configPath, ok := os.LookupEnv(ConfigPathEnv); ok {
		return configPath
	}
	return ConfigDefaultPath
}

func getConfigFileName() string {
	if configName, ok := os.LookupEnv(ConfigFileNameEnv); ok {
		return configName
	}
	return ConfigDefaultFilename
}

func doInitialize() {
	VConfig = viper.New()

	// set up config-file loading:  default is './biomcheck-config.yaml' but can be overridden with $(BIOM_CONFIG_PATH)/$(BIOM_CONFIG_FILENAME).yaml
	VConfig.AddConfigPath(getConfigPath())
	VConfig.SetConfigName(getConfigFileName())
	VConfig.SetConfigType("yaml")

	// set up envvar handling:  keys such as 'log.level' become 'BIOM_LOG_LEVEL'
	VConfig.SetEnvPrefix(EnvVarPrefix)
	VConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	VConfig.AutomaticEnv()

	// set up VConfig defaults
	VConfig.SetDefault(logLevel, ".:info")
	VConfig.SetDefault(FormatVersion, biom.DefaultFormatVersion)
	VConfig.SetDefault(DetailedReport, false)
	VConfig.SetDefault(ServePort, 9000)
}

// Load initializes configuration and loads settings from files and the
// environment. A missing configuration file is not an error. Safe to
// call concurrently; calls after the first successful load are no-ops.
//
// Returns an error if log level configuration is invalid.
func Load() error {
	loadOnce.Do(func() {
		Init()

		// Early log level update from environment variable allows us to debug the config loading.
		if earlyLoglevel := os.Getenv("BIOM_LOG_LEVEL"); earlyLoglevel != "" {
			if err := logging.UpdateLogLevels(earlyLoglevel); err != nil {
				logger.Errorf("Failed updating early log level %s: %+v", earlyLoglevel, err)
				loadErr = err
				return
			}
		}

		logger.Debugf("Loading configuration from %s/%s.yaml", getConfigPath(), getConfigFileName())
		if err := VConfig.ReadInConfig(); err != nil {
			// Only log if it's an actual error, not just a missing config file
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				logger.Warnf("error reading config; using defaults: %+v", err)
			}
			logger.Debugf("No config file found at %s/%s.yaml", getConfigPath(), getConfigFileName())
		}

		// Update log levels based on final configuration
		loglevel := VConfig.GetString(logLevel)
		if err := logging.UpdateLogLevels(loglevel); err != nil {
			logger.Errorf("Failed updating log level %s: %+v", loglevel, err)
			loadErr = err
			return
		}

		if logger.IsDebugEnabled() {
			VConfig.DebugTo(logger.Out())
		}
	})

	return loadErr
}

// ResetConfig clears all configuration and reinitializes with defaults.
//
// WARNING: This function is intended for testing only. It resets the
// global configuration state, which can cause race conditions in
// concurrent code.
func ResetConfig() {
	VConfig = nil
	once = sync.Once{}
	loadOnce = sync.Once{}
	loadErr = nil
	Init()
	_ = Load()
}
