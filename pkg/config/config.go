package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config is the deployment configuration, loaded fresh on every invocation.
type Config struct {
	ContainerName string `mapstructure:"container_name"`
	PortMapping   string `mapstructure:"port_mapping"` // host:container
	WebRoot       string `mapstructure:"web_root"`
	NginxVersion  string `mapstructure:"nginx_version"`
	CustomImage   string `mapstructure:"custom_image"` // overrides nginx_version when set
	ConfDir       string `mapstructure:"conf_dir"`     // mounted at /etc/nginx/conf.d
	MainConf      string `mapstructure:"main_conf"`    // mounted at /etc/nginx/nginx.conf
	LogMaxSize    string `mapstructure:"log_max_size"`
	LogMaxFile    int    `mapstructure:"log_max_file"`
}

// BaseDir returns the per-user configuration directory.
func BaseDir() string {
	if os.Getuid() == 0 {
		return "/etc/nginxctl"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/nginxctl"
	}
	return filepath.Join(home, ".nginxctl")
}

func newViper(cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("env")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(BaseDir())
		v.SetConfigType("env")
		v.SetConfigName("nginxctl")
	}

	base := BaseDir()
	v.SetDefault("container_name", "nginx-web")
	v.SetDefault("port_mapping", "8080:80")
	v.SetDefault("web_root", filepath.Join(base, "html"))
	v.SetDefault("nginx_version", "alpine")
	v.SetDefault("custom_image", "")
	v.SetDefault("conf_dir", filepath.Join(base, "conf.d"))
	v.SetDefault("main_conf", filepath.Join(base, "nginx.conf"))
	v.SetDefault("log_max_size", "10m")
	v.SetDefault("log_max_file", 3)

	return v
}

// Load reads the flat key=value config file and applies defaults for any
// missing field. A missing file is not an error; defaults apply.
func Load(cfgFile string) (Config, error) {
	v := newViper(cfgFile)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Debug("No config file found, using defaults")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// WriteDefault creates a config file populated with the default values.
// An already existing file is left untouched.
func WriteDefault(cfgFile string) (string, error) {
	if cfgFile == "" {
		cfgFile = filepath.Join(BaseDir(), "nginxctl.env")
	}

	if err := os.MkdirAll(filepath.Dir(cfgFile), 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	v := newViper(cfgFile)
	if err := v.SafeWriteConfigAs(cfgFile); err != nil {
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); ok {
			log.Info("Config file already exists", "path", cfgFile)
			return cfgFile, nil
		}
		return "", fmt.Errorf("error creating config file: %w", err)
	}

	return cfgFile, nil
}

// Validate checks the constraints that must hold before any mutating
// runtime call.
func (c Config) Validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name must not be empty")
	}
	if c.WebRoot == "" {
		return fmt.Errorf("web_root must not be empty")
	}
	if c.LogMaxSize == "" {
		return fmt.Errorf("log_max_size must not be empty")
	}
	if c.LogMaxFile < 1 {
		return fmt.Errorf("log_max_file must be at least 1, got %d", c.LogMaxFile)
	}

	if _, _, err := splitPortMapping(c.PortMapping); err != nil {
		return err
	}

	return nil
}

// Image resolves the container image reference. A custom image wins over
// the pinned Nginx version.
func (c Config) Image() string {
	if c.CustomImage != "" {
		return c.CustomImage
	}
	return "nginx:" + c.NginxVersion
}

// HostPort returns the host side of the port mapping.
func (c Config) HostPort() string {
	host, _, err := splitPortMapping(c.PortMapping)
	if err != nil {
		return ""
	}
	return host
}

func splitPortMapping(mapping string) (host, container string, err error) {
	host, container, ok := strings.Cut(mapping, ":")
	if !ok {
		return "", "", fmt.Errorf("port_mapping %q must be host:container", mapping)
	}

	for _, p := range []string{host, container} {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", "", fmt.Errorf("port_mapping %q contains invalid port %q", mapping, p)
		}
	}

	return host, container, nil
}
