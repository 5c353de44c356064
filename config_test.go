package cogcmp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.AssetMount != "/_components" {
		t.Errorf("asset mount = %q", cfg.AssetMount)
	}
	if cfg.DevServerURL != "" {
		t.Errorf("dev server url should default empty, got %q", cfg.DevServerURL)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COGCMP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AssetMount != "/_components" || cfg.DevServerURL != "" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cogcmp.yaml")
	body := "dev_server_url: http://localhost:3001\nasset_mount: /widgets\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COGCMP_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DevServerURL != "http://localhost:3001" {
		t.Errorf("dev server url = %q", cfg.DevServerURL)
	}
	if cfg.AssetMount != "/widgets" {
		t.Errorf("asset mount = %q", cfg.AssetMount)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cogcmp.yaml")
	if err := os.WriteFile(path, []byte("asset_mount: /widgets\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COGCMP_CONFIG", path)
	t.Setenv("COGCMP_ASSET_MOUNT", "/env-mount")
	t.Setenv("COGCMP_DEV_SERVER_URL", "http://localhost:9000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AssetMount != "/env-mount" {
		t.Errorf("asset mount = %q, want env value", cfg.AssetMount)
	}
	if cfg.DevServerURL != "http://localhost:9000" {
		t.Errorf("dev server url = %q, want env value", cfg.DevServerURL)
	}
}

func TestLoadConfigRejectsBadMount(t *testing.T) {
	t.Setenv("COGCMP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("COGCMP_ASSET_MOUNT", "no-leading-slash")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a mount without a leading slash")
	}
}
