package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue(t *testing.T) {
	t.Setenv("COLLAB_TEST_KEY", "")

	assert.Equal(t, "from-config", getConfigValue("from-config", "COLLAB_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "COLLAB_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("YOUR_API_KEY", "COLLAB_TEST_KEY", "default"))

	t.Setenv("COLLAB_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", getConfigValue("from-config", "COLLAB_TEST_KEY", "default"))
}

func TestInitApp(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8080")

	var c Config
	initApp(&c)

	assert.Equal(t, "s3cret", c.App.SecretKey)
	assert.Equal(t, 8080, c.App.Port)
	assert.NotEmpty(t, c.Cors.AllowOrigins)

	t.Setenv("APP_PORT", "9090")
	initApp(&c)
	assert.Equal(t, 9090, c.App.Port)
}

func TestInitEvents_Defaults(t *testing.T) {
	for _, key := range []string{"EVENTS_TRANSPORT", "SNAPSHOT_TOPIC", "VIDEO_TOPIC", "SNAPSHOT_SUBSCRIPTION", "VIDEO_SUBSCRIPTION"} {
		t.Setenv(key, "")
	}

	var c Config
	initEvents(&c)

	assert.Equal(t, TransportPubSub, c.Events.Transport)
	assert.Equal(t, "snapshot-stored", c.Events.SnapshotTopic)
	assert.Equal(t, "video-changed", c.Events.VideoTopic)
}

func TestGetYouTubeConfig_DefaultConcurrency(t *testing.T) {
	saved := C
	t.Cleanup(func() { C = saved })
	t.Setenv("YOUTUBE_API_KEY", "key")
	C.YouTube.Concurrency = 0

	cfg := GetYouTubeConfig()

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, defaultEnrichConcurrency, cfg.Concurrency)
}

func TestGetTwitterConfig_DryRunWithoutCredentials(t *testing.T) {
	saved := C
	t.Cleanup(func() { C = saved })
	C.Twitter = Twitter{}
	for _, key := range []string{"TWITTER_ACCESS_TOKEN", "TWITTER_REFRESH_TOKEN", "TWITTER_DRY_RUN"} {
		t.Setenv(key, "")
	}

	assert.True(t, GetTwitterConfig().DryRun)

	t.Setenv("TWITTER_REFRESH_TOKEN", "refresh")
	assert.False(t, GetTwitterConfig().DryRun)

	t.Setenv("TWITTER_DRY_RUN", "true")
	assert.True(t, GetTwitterConfig().DryRun)
}

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.env")
	content := "# comment\n\nCOLLAB_ENV_A=alpha\nCOLLAB_ENV_B=\"beta\"\nCOLLAB_ENV_C=ignored\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("COLLAB_ENV_C", "kept")
	os.Unsetenv("COLLAB_ENV_A")
	os.Unsetenv("COLLAB_ENV_B")
	t.Cleanup(func() {
		os.Unsetenv("COLLAB_ENV_A")
		os.Unsetenv("COLLAB_ENV_B")
	})

	LoadEnvFromFile(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "alpha", os.Getenv("COLLAB_ENV_A"))
	assert.Equal(t, "beta", os.Getenv("COLLAB_ENV_B"))
	assert.Equal(t, "kept", os.Getenv("COLLAB_ENV_C"))
}
