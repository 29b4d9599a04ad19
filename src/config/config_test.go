package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFiles(t *testing.T, cfgJSON, aliasJSON string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfgJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aliasconfig.json"), []byte(aliasJSON), 0644))
	return dir
}

func TestLoadConfigs(t *testing.T) {
	dir := writeConfigFiles(t, `{
		"server": {"addr": ":9090"},
		"data": {
			"local_path": "orders.csv",
			"remote_url": "https://example.com/orders.csv",
			"watch": true,
			"fetch_timeout": "5s"
		},
		"log_name": "dash.log",
		"log_max_size": "1024 * 1024"
	}`, `{"aliases": {"label": ["late_delivery_risk"]}}`)

	cfg, acfg, err := loadConfigs(dir, "config.json", "aliasconfig.json")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "orders.csv", cfg.Data.LocalPath)
	assert.Equal(t, Duration(5*time.Second), cfg.Data.FetchTimeout)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, []string{"late_delivery_risk"}, acfg.GetAliases("label"))
}

func TestLoadConfigsDefaults(t *testing.T) {
	dir := writeConfigFiles(t, `{}`, `{}`)

	cfg, _, err := loadConfigs(dir, "config.json", "aliasconfig.json")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "Delay_Model.csv", cfg.Data.LocalPath)
	assert.Equal(t, Duration(30*time.Second), cfg.Data.FetchTimeout)
	assert.Equal(t, "app.log", cfg.LogName)
	assert.Equal(t, "@every 1h", cfg.RotateSpec)
}

func TestLoadConfigsMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadConfigs(dir, "config.json", "aliasconfig.json")
	assert.Error(t, err)
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))
}

func TestDurationInvalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}
