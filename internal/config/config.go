// Package config loads the configuration of the mailenc command from a YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mailenc/message"
	"github.com/zostay/go-mailenc/message/chars"
	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/header/component"
)

// EnvPrefix starts the name of every environment variable read by Load.
const EnvPrefix = "MAILENC_"

// Config holds the complete configuration.
type Config struct {
	Encoding EncodingConfig `yaml:"encoding"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EncodingConfig holds the settings passed to the encoder.
type EncodingConfig struct {
	// MailType is "ascii" or "internationalized".
	MailType string `yaml:"mail_type"`

	LineLimit   int `yaml:"line_limit"`
	Concurrency int `yaml:"concurrency"`

	// MessageIDDomain turns on Date and Message-ID generation for mails
	// without them.
	MessageIDDomain string `yaml:"message_id_domain"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, cfg.Validate()
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvVars()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	c.Encoding.MailType = chars.ASCII.String()
	c.Encoding.LineLimit = encoder.DefaultLineLimit
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with the non-empty environment
// variables.
func (c *Config) applyEnvVars() {
	if v := os.Getenv(EnvPrefix + "MAIL_TYPE"); v != "" {
		c.Encoding.MailType = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPrefix + "LINE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Encoding.LineLimit = n
		}
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Encoding.Concurrency = n
		}
	}
	if v := os.Getenv(EnvPrefix + "MESSAGE_ID_DOMAIN"); v != "" {
		c.Encoding.MessageIDDomain = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate checks the values that are parsed later.
func (c *Config) Validate() error {
	if _, err := c.MailType(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// MailType returns the configured mail type.
func (c *Config) MailType() (chars.MailType, error) {
	return chars.ParseMailType(c.Encoding.MailType)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", c.Logging.Level, err)
	}
	return lvl, nil
}

// Options returns the message options for the configuration.
func (c *Config) Options(logger zerolog.Logger) ([]message.Option, error) {
	mt, err := c.MailType()
	if err != nil {
		return nil, err
	}

	opts := []message.Option{
		message.WithMailType(mt),
		message.WithLineLimit(c.Encoding.LineLimit),
		message.WithLogger(logger),
	}
	if c.Encoding.Concurrency != 0 {
		opts = append(opts, message.WithConcurrency(c.Encoding.Concurrency))
	}
	if c.Encoding.MessageIDDomain != "" {
		ids := component.NewMessageIDGenerator(c.Encoding.MessageIDDomain)
		opts = append(opts, message.WithGeneratedHeaders(ids, time.Now))
	}
	return opts, nil
}
