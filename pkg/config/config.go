// Package config resolves runtime settings from flags, SOLACE_* environment
// variables and an optional solace.yaml or solace.toml file, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/utils"
)

const (
	KeyDB         = "db"
	KeyWAL        = "wal"
	KeySync       = "sync"
	KeyReplyDelay = "chat.reply_delay"
	KeyHTTPAddr   = "http.addr"
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
)

var syncModes = []string{"OFF", "NORMAL", "FULL", "EXTRA"}

type Config struct {
	DB         string
	WAL        bool
	Sync       string
	ReplyDelay time.Duration
	HTTPAddr   string
	LogLevel   string
	LogFormat  string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyWAL, false)
	v.SetDefault(KeySync, "FULL")
	v.SetDefault(KeyReplyDelay, chat.DefaultReplyDelay)
	v.SetDefault(KeyHTTPAddr, "127.0.0.1:8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix("SOLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile, or solace.{yaml,toml} from the data directory or
// the working directory when configFile is empty, and decodes the result.
// A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		path, err := utils.ExpandHome(configFile)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("solace")
		v.AddConfigPath(utils.DefaultDataDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		DB:         v.GetString(KeyDB),
		WAL:        v.GetBool(KeyWAL),
		Sync:       strings.ToUpper(v.GetString(KeySync)),
		ReplyDelay: v.GetDuration(KeyReplyDelay),
		HTTPAddr:   v.GetString(KeyHTTPAddr),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	valid := false
	for _, m := range syncModes {
		if c.Sync == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid sync mode %q (want one of %s)", c.Sync, strings.Join(syncModes, ", "))
	}
	if c.ReplyDelay < 0 {
		return fmt.Errorf("chat.reply_delay must not be negative, got %s", c.ReplyDelay)
	}
	return nil
}
