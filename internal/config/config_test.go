package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadReadsChannelsAndStorageFromFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, "channels:\n  - name: eng\n  - name: random\nstorage:\n  root: /tmp/data\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Channels, 2)
	assert.Equal(t, model.Channel{Name: "eng"}, cfg.Channels[0].Channel())
	assert.Equal(t, model.Channel{Name: "random"}, cfg.Channels[1].Channel())
	assert.Equal(t, "/tmp/data", cfg.Storage.Root)
	assert.Equal(t, "xoxb-test", cfg.BotToken)
}

func TestLoadReadsChannelByRawID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, "channels:\n  - id: C0123456\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Channels, 1)
	assert.Equal(t, "", cfg.Channels[0].Name)
	assert.Equal(t, "C0123456", cfg.Channels[0].ID)
	assert.Equal(t, "channel_C0123456", cfg.Channels[0].Channel().Alias())
}

func TestLoadDefaultsStorageRootWhenUnset(t *testing.T) {
	t.Setenv("BOT_TOKEN", "xoxb-test")
	path := writeConfigFile(t, "channels:\n  - name: eng\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.Storage.Root)
}

func TestLoadFailsWithoutAnyToken(t *testing.T) {
	path := writeConfigFile(t, "channels:\n  - name: eng\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadReadsIssueServerFromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "xoxb-test")
	t.Setenv("ISSUE_SERVER", "https://issues.example.com")
	path := writeConfigFile(t, "channels:\n  - name: eng\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Jira.Enabled())
	assert.Equal(t, "https://issues.example.com", cfg.Jira.Server)
}
