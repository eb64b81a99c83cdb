package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nserver_url: ws.example.com\nserver_port: \"8443\"\nusername: u\npassword: p\ncors_origins: [\"https://a.example\"]\nreconnect_delay_seconds: 2\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ServerURL != "ws.example.com" || cfg.ServerPort != "8443" || cfg.Username != "u" || cfg.Password != "p" || cfg.ReconnectDelaySeconds != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","layout_file":"/data/layout.json","cacert_file":"/etc/ca.pem","destination":"/q"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.LayoutFile != "/data/layout.json" || cfg.CACertFile != "/etc/ca.pem" || cfg.Destination != "/q" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlayout_url=\"https://x/layout.json\"\nendpoint=\"/events\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LayoutURL != "https://x/layout.json" || cfg.Endpoint != "/events" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ServerURL != DefaultServerURL || cfg.ServerPort != "443" || cfg.Endpoint != "/network-events" || cfg.Destination != "/passengers" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReconnectDelay() != 5*time.Second {
		t.Fatalf("reconnect delay = %v", cfg.ReconnectDelay())
	}

	cfg = Config{Addr: ":1", ReconnectDelaySeconds: 9}
	cfg.ApplyDefaults()
	if cfg.Addr != ":1" || cfg.ReconnectDelaySeconds != 9 || cfg.LayoutFile != DefaultLayoutFile {
		t.Fatalf("defaults overrode explicit values: %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvServerURL:  "env.example.com",
		EnvServerPort: "9443",
		EnvUsername:   "user",
		EnvPassword:   "secret",
		EnvCACert:     "/ca.pem",
		EnvAddr:       ":9090",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	cfg := Config{ServerURL: "file.example.com", Username: "from-file"}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.ServerURL != "env.example.com" || cfg.ServerPort != "9443" || cfg.Username != "user" || cfg.Password != "secret" || cfg.CACertFile != "/ca.pem" || cfg.Addr != ":9090" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}

	env = map[string]string{EnvUsername: ""}
	cfg = Config{Username: "kept"}
	if err := ApplyEnv(&cfg, lookup); err != nil || cfg.Username != "kept" {
		t.Fatalf("empty env value should not override: %+v %v", cfg, err)
	}

	env = map[string]string{EnvServerPort: "https"}
	if err := ApplyEnv(&Config{}, lookup); err == nil {
		t.Fatalf("expected invalid port error")
	}
}
