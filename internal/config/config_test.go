package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASYNC_SERVER", "")
	t.Setenv("DATASYNC_NAME", "")
	t.Setenv("DATASYNC_OUTPUT", "")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.Name == "" {
		t.Error("Name is empty, want the local username or a fallback")
	}
	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty", cfg.OutputDir)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("DATASYNC_SERVER", "wss://sync.example.com")
	t.Setenv("DATASYNC_NAME", "envuser")
	t.Setenv("DATASYNC_OUTPUT", "/tmp/incoming")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "wss://sync.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Name != "envuser" {
		t.Errorf("Name = %q, want envuser", cfg.Name)
	}
	if cfg.OutputDir != "/tmp/incoming" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DATASYNC_SERVER", "wss://env.example.com")
	t.Setenv("DATASYNC_NAME", "envuser")

	cfg, err := Load(Options{Server: "ws://flag.example.com", Name: "flaguser"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "ws://flag.example.com" {
		t.Errorf("ServerURL = %q, want the flag value", cfg.ServerURL)
	}
	if cfg.Name != "flaguser" {
		t.Errorf("Name = %q, want flaguser", cfg.Name)
	}
}

func TestRoomURL(t *testing.T) {
	cfg := &Config{ServerURL: "ws://localhost:8080"}

	if got := cfg.RoomURL("ABCD12"); got != "ws://localhost:8080/room/ABCD12" {
		t.Errorf("RoomURL() = %q", got)
	}

	// Room ids are opaque; anything odd must survive as one escaped
	// path segment.
	if got := cfg.RoomURL("a b/c"); got != "ws://localhost:8080/room/a%20b%2Fc" {
		t.Errorf("RoomURL() = %q", got)
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("DATASYNC_ADDR", "")
	t.Setenv("DATASYNC_STATIC_DIR", "")

	cfg := LoadServer("", "")
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}

	t.Setenv("DATASYNC_ADDR", ":9090")
	cfg = LoadServer("", "")
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090 from env", cfg.Addr)
	}

	cfg = LoadServer(":7070", "./web")
	if cfg.Addr != ":7070" || cfg.StaticDir != "./web" {
		t.Errorf("cfg = %+v, want flag values", cfg)
	}
}
