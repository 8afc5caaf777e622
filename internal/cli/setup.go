package cli

import (
	"github.com/joho/godotenv"

	"homekeeper/internal/config"
	"homekeeper/internal/logging"
)

// LoadEnvFile loads .env from the working directory. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// commonOptions are the flags both tools share.
type commonOptions struct {
	ConfigPath string
	Verbose    bool
}

// loadConfig reads and validates configuration, applies flag overrides through apply,
// and installs the logger.
func loadConfig(opts commonOptions, apply func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, WrapExitError(ExitCommandError, "load config", err)
	}
	if apply != nil {
		apply(&cfg)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, WrapExitError(ExitCommandError, "invalid config", err)
	}

	logging.Setup(logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}
