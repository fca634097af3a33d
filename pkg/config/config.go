// Package config reads the toolkit settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/erc7824/nitrolite/cryptokit/pkg/hd"
	"github.com/erc7824/nitrolite/cryptokit/pkg/log"
)

const (
	configDirPathEnv     = "CRYPTOKIT_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config represents the overall toolkit configuration
type Config struct {
	MnemonicStrength int    `env:"CRYPTOKIT_MNEMONIC_STRENGTH" env-default:"128" env-description:"entropy bits of new mnemonics"`
	DerivationPath   string `env:"CRYPTOKIT_DERIVATION_PATH" env-default:"m/44'/60'/0'/0/0" env-description:"BIP-32 path of derived accounts"`
	Metrics          bool   `env:"CRYPTOKIT_METRICS" env-default:"false" env-description:"register Prometheus collectors"`

	Log log.Config
}

// Load builds configuration from an optional .env file and environment variables.
// Variables already present in the environment win over the .env file.
func Load(logger log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	logger = logger.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	logger.Info("loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Warn(".env file not found", "path", configDotEnvPath)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		logger.Error("failed to read env", "err", err)
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		"mnemonicStrength", conf.MnemonicStrength,
		"derivationPath", conf.DerivationPath,
		"metrics", conf.Metrics)
	return &conf, nil
}

// Validate checks values cleanenv cannot check by type alone.
func (c Config) Validate() error {
	switch c.MnemonicStrength {
	case 128, 160, 192, 224, 256:
	default:
		return fmt.Errorf("%w: %d bits", hd.ErrInvalidStrength, c.MnemonicStrength)
	}
	if _, err := hd.ParsePath(c.DerivationPath); err != nil {
		return fmt.Errorf("invalid derivation path %q: %w", c.DerivationPath, err)
	}
	if _, err := log.ParseLevel(string(c.Log.Level)); err != nil {
		return err
	}
	return nil
}

// Usage returns the environment variables the toolkit understands.
func Usage() string {
	var conf Config
	text, err := cleanenv.GetDescription(&conf, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
