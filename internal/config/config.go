// Package config loads the zksign configuration: a YAML file whose values
// can be overridden from the environment.
package config

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"
)

// Error is the class of configuration errors.
var Error = errs.Class("config")

type SignerConfig struct {
	Backend    string `yaml:"backend" env:"ZKSIGN_BACKEND"`
	Seed       string `yaml:"seed" env:"ZKSIGN_SEED"`
	PrivateKey string `yaml:"private_key" env:"ZKSIGN_PRIVATE_KEY"`
}

type LogConfig struct {
	File       string `yaml:"file" env:"ZKSIGN_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"ZKSIGN_LOG_MAX_SIZE_MB"`
	MaxAgeDays int    `yaml:"max_age_days" env:"ZKSIGN_LOG_MAX_AGE_DAYS"`
	Debug      bool   `yaml:"debug" env:"ZKSIGN_LOG_DEBUG"`
}

type Config struct {
	Signer SignerConfig `yaml:"signer"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Signer: SignerConfig{
			Backend: "edwards",
		},
		Log: LogConfig{
			MaxSizeMB:  100,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path, when not empty, over the defaults and then applies
// environment overrides.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, Error.Wrap(err)
		}
		defer f.Close()

		err = yaml.NewDecoder(f).Decode(&cfg)
		if err != nil {
			return cfg, Error.New("%s: %v", path, err)
		}
	}

	err = env.Parse(&cfg.Signer)
	if err != nil {
		return cfg, Error.Wrap(err)
	}

	err = env.Parse(&cfg.Log)
	if err != nil {
		return cfg, Error.Wrap(err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that at most one key source is set and that it is hex.
func (c Config) Validate() (err error) {
	if c.Signer.Seed != "" && c.Signer.PrivateKey != "" {
		return Error.New("signer: seed and private_key are mutually exclusive")
	}

	for name, v := range map[string]string{
		"seed":        c.Signer.Seed,
		"private_key": c.Signer.PrivateKey,
	} {
		if v == "" {
			continue
		}

		_, err = DecodeHex(v)
		if err != nil {
			return Error.New("signer: %s: %v", name, err)
		}
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxAgeDays < 0 {
		return Error.New("log: negative rotation limit")
	}

	return nil
}

// DecodeHex decodes hex with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
}
