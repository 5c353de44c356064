package cogcmp

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds host-level settings for serving component frontends.
type Config struct {
	// DevServerURL, when set, overrides the source of every path-declared
	// component so frontends can be served from a live development server
	// (for example a bundler's hot-reload server).
	DevServerURL string

	// AssetMount is the URL prefix under which path-declared component
	// assets are served by the registry handler.
	AssetMount string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{AssetMount: "/_components"}
}

// LoadConfig reads configuration from the environment and an optional config
// file. Env vars use the COGCMP_ prefix (COGCMP_DEV_SERVER_URL,
// COGCMP_ASSET_MOUNT); COGCMP_CONFIG points at an explicit config file,
// otherwise cogcmp.yaml in the working directory is read if present.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("dev_server_url", "")
	v.SetDefault("asset_mount", "/_components")

	v.SetConfigType("yaml")
	if cfgPath := os.Getenv("COGCMP_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cogcmp")
	}

	v.SetEnvPrefix("COGCMP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	cfg := Config{
		DevServerURL: v.GetString("dev_server_url"),
		AssetMount:   v.GetString("asset_mount"),
	}
	if cfg.AssetMount == "" || !strings.HasPrefix(cfg.AssetMount, "/") {
		return Config{}, fmt.Errorf("asset_mount must start with %q, got %q", "/", cfg.AssetMount)
	}
	return cfg, nil
}
