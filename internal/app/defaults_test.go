package app

import (
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("environment variables win", func(t *testing.T) {
		t.Setenv("SPG_CONFIG_PATH", "/etc/spg/config.toml")
		t.Setenv("SPG_HOME", "/var/lib/spg")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if defaults["config_path"] != "/etc/spg/config.toml" {
			t.Errorf("unexpected config path %q", defaults["config_path"])
		}
		if defaults["base_dir"] != "/var/lib/spg" {
			t.Errorf("unexpected base dir %q", defaults["base_dir"])
		}
		if defaults["log_dir"] != filepath.Join("/var/lib/spg", "log") {
			t.Errorf("unexpected log dir %q", defaults["log_dir"])
		}
	})

	t.Run("falls back to the home directory", func(t *testing.T) {
		t.Setenv("SPG_CONFIG_PATH", "")
		t.Setenv("SPG_HOME", "")
		t.Setenv("HOME", "/home/tester")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if defaults["config_path"] != "/home/tester/.config/spg.toml" {
			t.Errorf("unexpected config path %q", defaults["config_path"])
		}
		if defaults["base_dir"] != "/home/tester/.local/share/spg" {
			t.Errorf("unexpected base dir %q", defaults["base_dir"])
		}
	})
}
