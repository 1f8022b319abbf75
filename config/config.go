package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/viper"
)

var log = logging.Logger("config")

var (
	// ErrRead indicates the config file could not be read.
	ErrRead = errors.New("failed to read config file")
	// ErrParse indicates the config file exists but could not be decoded.
	ErrParse = errors.New("failed to parse config")
	// ErrMissingField indicates a required field is absent or invalid.
	ErrMissingField = errors.New("missing required field")
)

// Network is the Monero network variant the tool operates on.
type Network string

const (
	Mainnet  Network = "mainnet"
	Testnet  Network = "testnet"
	Stagenet Network = "stagenet"
)

func (n Network) Valid() bool {
	switch n {
	case Mainnet, Testnet, Stagenet:
		return true
	}
	return false
}

// DaemonRPC holds connection settings for a monero-wallet-rpc endpoint.
type DaemonRPC struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     uint16 `mapstructure:"port" json:"port"`
	TLS      bool   `mapstructure:"tls" json:"tls"`
	Username string `mapstructure:"username" json:"username,omitempty"`
	Password string `mapstructure:"password" json:"password,omitempty"`
}

// URL builds the full JSON-RPC endpoint URL from the connection settings.
func (d DaemonRPC) URL() string {
	scheme := "http"
	if d.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d/json_rpc", scheme, d.Host, d.Port)
}

// Config is the top-level configuration for the multisig wallet tool.
type Config struct {
	Network Network   `mapstructure:"network" json:"network"`
	Daemon  DaemonRPC `mapstructure:"daemon" json:"daemon"`
	DataDir string    `mapstructure:"data_dir" json:"data_dir"`
}

// Default returns the configuration used when no config file is given:
// mainnet, a local wallet-rpc on the default port, and a per-user data
// directory.
func Default() Config {
	dataDir := "."
	if base, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(base, "monero-multisig")
	}
	return Config{
		Network: Mainnet,
		Daemon: DaemonRPC{
			Host: "127.0.0.1",
			Port: 18081,
		},
		DataDir: dataDir,
	}
}

// Load reads a JSON configuration file, falling back to defaults when
// path is empty. Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return Config{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return Config{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debugw("loaded config", "path", path, "network", cfg.Network, "daemon", cfg.Daemon.URL())
	return cfg, nil
}

// Validate checks that every required field carries a usable value.
func (c Config) Validate() error {
	if !c.Network.Valid() {
		return fmt.Errorf("%w: network must be mainnet, testnet or stagenet, got %q", ErrMissingField, string(c.Network))
	}
	if c.Daemon.Host == "" {
		return fmt.Errorf("%w: daemon.host", ErrMissingField)
	}
	if c.Daemon.Port == 0 {
		return fmt.Errorf("%w: daemon.port", ErrMissingField)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir", ErrMissingField)
	}
	return nil
}

// Save persists the configuration as pretty-printed JSON, creating the
// parent directory when needed.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}
	buf, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
