package config

import (
	"fmt"
	"net/url"
	"os"
	"os/user"
)

// Default configuration values.
const (
	DefaultServerURL = "ws://localhost:8080"
	DefaultAddr      = ":8080"
	DefaultName      = "anonymous"
)

// Config holds client configuration.
type Config struct {
	// ServerURL is the relay server base URL (ws:// or wss://).
	ServerURL string

	// Name is the sender label attached to outgoing chat and file
	// frames.
	Name string

	// OutputDir is where received files are written.
	OutputDir string

	// ChunkSize overrides the transfer chunk size when positive.
	ChunkSize int
}

// Options carries CLI flag overrides into Load.
type Options struct {
	Server    string
	Name      string
	OutputDir string
	ChunkSize int
}

// Load reads client configuration with the following priority:
// 1. CLI flags (passed via Options) - highest priority
// 2. Environment variables
// 3. Defaults - lowest priority
func Load(opts Options) (*Config, error) {
	server := opts.Server
	if server == "" {
		server = os.Getenv("DATASYNC_SERVER")
	}
	if server == "" {
		server = DefaultServerURL
	}
	if _, err := url.Parse(server); err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", server, err)
	}

	name := opts.Name
	if name == "" {
		name = os.Getenv("DATASYNC_NAME")
	}
	if name == "" {
		if u, err := user.Current(); err == nil && u.Username != "" {
			name = u.Username
		} else {
			name = DefaultName
		}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = os.Getenv("DATASYNC_OUTPUT")
	}

	return &Config{
		ServerURL: server,
		Name:      name,
		OutputDir: outputDir,
		ChunkSize: opts.ChunkSize,
	}, nil
}

// RoomURL returns the WebSocket URL for a room on the configured
// server. The room id travels as an escaped path segment and is used
// verbatim, case-sensitively, as the broadcast key.
func (c *Config) RoomURL(roomID string) string {
	return fmt.Sprintf("%s/room/%s", c.ServerURL, url.PathEscape(roomID))
}

// ServerConfig holds relay server configuration.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// LoadServer reads server configuration from the environment with the
// given flag overrides taking priority.
func LoadServer(addrFlag, staticFlag string) *ServerConfig {
	addr := addrFlag
	if addr == "" {
		addr = os.Getenv("DATASYNC_ADDR")
	}
	if addr == "" {
		addr = DefaultAddr
	}

	staticDir := staticFlag
	if staticDir == "" {
		staticDir = os.Getenv("DATASYNC_STATIC_DIR")
	}

	return &ServerConfig{Addr: addr, StaticDir: staticDir}
}
