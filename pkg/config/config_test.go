package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "nginx-web", cfg.ContainerName)
	assert.Equal(t, "8080:80", cfg.PortMapping)
	assert.Equal(t, "alpine", cfg.NginxVersion)
	assert.Empty(t, cfg.CustomImage)
	assert.Equal(t, "10m", cfg.LogMaxSize)
	assert.Equal(t, 3, cfg.LogMaxFile)
	assert.NotEmpty(t, cfg.WebRoot)
	assert.NotEmpty(t, cfg.ConfDir)
	assert.NotEmpty(t, cfg.MainConf)
}

func TestLoadReadsFlatKeyValueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginxctl.env")
	content := `CONTAINER_NAME=web1
PORT_MAPPING=9090:80
WEB_ROOT=/srv/www
NGINX_VERSION=1.27-alpine
LOG_MAX_SIZE=50m
LOG_MAX_FILE=5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "web1", cfg.ContainerName)
	assert.Equal(t, "9090:80", cfg.PortMapping)
	assert.Equal(t, "/srv/www", cfg.WebRoot)
	assert.Equal(t, "nginx:1.27-alpine", cfg.Image())
	assert.Equal(t, "50m", cfg.LogMaxSize)
	assert.Equal(t, 5, cfg.LogMaxFile)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginxctl.env")
	require.NoError(t, os.WriteFile(path, []byte("CONTAINER_NAME=only-name\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "only-name", cfg.ContainerName)
	assert.Equal(t, "8080:80", cfg.PortMapping)
	assert.Equal(t, 3, cfg.LogMaxFile)
}

func TestImageCustomOverridesVersion(t *testing.T) {
	cfg := Config{NginxVersion: "alpine", CustomImage: "registry.local/web:v2"}
	assert.Equal(t, "registry.local/web:v2", cfg.Image())

	cfg.CustomImage = ""
	assert.Equal(t, "nginx:alpine", cfg.Image())
}

func TestHostPort(t *testing.T) {
	cfg := Config{PortMapping: "8080:80"}
	assert.Equal(t, "8080", cfg.HostPort())

	cfg.PortMapping = "bad"
	assert.Empty(t, cfg.HostPort())
}

func TestValidate(t *testing.T) {
	valid := Config{
		ContainerName: "web1",
		PortMapping:   "8080:80",
		WebRoot:       "/srv/www",
		LogMaxSize:    "10m",
		LogMaxFile:    1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty container name", func(c *Config) { c.ContainerName = "" }},
		{"empty web root", func(c *Config) { c.WebRoot = "" }},
		{"empty log max size", func(c *Config) { c.LogMaxSize = "" }},
		{"zero log max file", func(c *Config) { c.LogMaxFile = 0 }},
		{"missing colon", func(c *Config) { c.PortMapping = "8080" }},
		{"non-numeric port", func(c *Config) { c.PortMapping = "http:80" }},
		{"zero port", func(c *Config) { c.PortMapping = "0:80" }},
		{"negative port", func(c *Config) { c.PortMapping = "-1:80" }},
		{"port out of range", func(c *Config) { c.PortMapping = "8080:70000" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteDefaultCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginxctl.env")

	written, err := WriteDefault(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)
	assert.FileExists(t, path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nginx-web", cfg.ContainerName)
}

func TestWriteDefaultKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginxctl.env")
	require.NoError(t, os.WriteFile(path, []byte("CONTAINER_NAME=keep-me\n"), 0644))

	_, err := WriteDefault(path)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "keep-me", cfg.ContainerName)
}
