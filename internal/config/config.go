// Package config loads channel, storage, and credential settings from a
// config file plus environment variable overrides, the way the teacher's
// service binaries load theirs (github.com/spf13/viper, named in both
// chat-service/cmd/server/main.go and auth-service/cmd/server/main.go).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/zeebeeCoder/slack-tool/internal/model"
	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
)

// Config is the full set of settings a run needs.
type Config struct {
	Channels []ChannelConfig `mapstructure:"channels"`
	Storage  Storage         `mapstructure:"storage"`
	Jira     Jira            `mapstructure:"jira"`

	UserToken  string
	BotToken   string
	IssueUser  string
	IssueToken string
}

// ChannelConfig names one channel to cache, by display name, raw platform
// id, or both — mirroring spec.md §6's channels: list<{name, id}> shape so a
// channel that was never given a human name can still be configured.
type ChannelConfig struct {
	Name string `mapstructure:"name"`
	ID   string `mapstructure:"id"`
}

// Channel converts c to the model.Channel the fetch/store layers use.
func (c ChannelConfig) Channel() model.Channel {
	return model.Channel{Name: c.Name, ID: c.ID}
}

// Storage configures the on-disk Parquet root.
type Storage struct {
	Root string `mapstructure:"root"`
}

// Jira configures ticket enrichment. Disabled when Server is empty.
type Jira struct {
	Server string `mapstructure:"server"`
}

// Enabled reports whether enrichment should run at all.
func (j Jira) Enabled() bool { return j.Server != "" }

// Load reads configFile (if non-empty) and binds the fixed environment
// variable names: USER_TOKEN, BOT_TOKEN, ISSUE_USER, ISSUE_TOKEN,
// ISSUE_SERVER. No other env var spellings are recognized — a decision
// pinned rather than left ambiguous, so operators don't hunt for which of
// several near-miss names the tool actually reads.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("storage.root", "./data")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, slackerr.New(slackerr.ConfigError, configFile, err)
		}
	}

	v.SetEnvPrefix("")
	v.AutomaticEnv()
	for _, key := range []string{"USER_TOKEN", "BOT_TOKEN", "ISSUE_USER", "ISSUE_TOKEN", "ISSUE_SERVER"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, slackerr.New(slackerr.ConfigError, configFile, fmt.Errorf("unmarshal: %w", err))
	}

	cfg.UserToken = v.GetString("USER_TOKEN")
	cfg.BotToken = v.GetString("BOT_TOKEN")
	cfg.IssueUser = v.GetString("ISSUE_USER")
	cfg.IssueToken = v.GetString("ISSUE_TOKEN")
	cfg.Jira.Server = firstNonEmpty(v.GetString("ISSUE_SERVER"), cfg.Jira.Server)

	if cfg.BotToken == "" && cfg.UserToken == "" {
		return nil, slackerr.New(slackerr.ConfigError, "USER_TOKEN/BOT_TOKEN", fmt.Errorf("at least one token must be set"))
	}
	if cfg.Storage.Root == "" {
		return nil, slackerr.New(slackerr.ConfigError, "storage.root", fmt.Errorf("must not be empty"))
	}

	return &cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
