package deso

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath = "DESO_CONFIG"
	EnvLogLevel   = "DESO_LOG_LEVEL"
)

type HostMode string

const (
	// HostBrowser runs with a custody context reachable for signing.
	HostBrowser HostMode = "browser"
	// HostServer has no custody context; bridge operations fail fast.
	HostServer HostMode = "server"
)

type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory"
	SessionStoreFile   SessionStoreKind = "file"
	SessionStoreSqlite SessionStoreKind = "sqlite"
)

type SessionStoreConfig struct {
	Kind SessionStoreKind `yaml:"kind"`
	Path string           `yaml:"path"`
}

type Config struct {
	NodeURI           string             `yaml:"nodeUri"`
	Network           Network            `yaml:"network"`
	Host              HostMode           `yaml:"host"`
	IdentityURI       string             `yaml:"identityUri"`
	CallbackHostPort  string             `yaml:"callbackHostPort"`
	ApprovalTimeout   *time.Duration     `yaml:"approvalTimeout"`
	LocalConstruction *bool              `yaml:"localConstruction"`
	FeeRateNanosPerKB uint64             `yaml:"feeRateNanosPerKB"`
	SessionStore      SessionStoreConfig `yaml:"sessionStore"`
	LogLevel          string             `yaml:"logLevel"`
}

const DefaultApprovalTimeout = 10 * time.Minute

var defaultConfig = &Config{
	Network:           NetworkMainNet,
	Host:              HostBrowser,
	CallbackHostPort:  "127.0.0.1:8457",
	FeeRateNanosPerKB: DefaultFeeRateNanosPerKB,
	SessionStore:      SessionStoreConfig{Kind: SessionStoreMemory},
}

func (c *Config) setDefaults() {
	if c.Network == "" {
		c.Network = defaultConfig.Network
	}

	if params, err := c.Network.Params(); err == nil {
		if c.NodeURI == "" {
			c.NodeURI = params.NodeURI
		}
		if c.IdentityURI == "" {
			c.IdentityURI = params.IdentityURI
		}
	}

	if c.Host == "" {
		c.Host = defaultConfig.Host
	}

	if c.CallbackHostPort == "" {
		c.CallbackHostPort = defaultConfig.CallbackHostPort
	}

	if c.ApprovalTimeout == nil {
		timeout := DefaultApprovalTimeout
		c.ApprovalTimeout = &timeout
	}

	if c.LocalConstruction == nil {
		local := true
		c.LocalConstruction = &local
	}

	if c.FeeRateNanosPerKB == 0 {
		c.FeeRateNanosPerKB = defaultConfig.FeeRateNanosPerKB
	}

	if c.SessionStore.Kind == "" {
		c.SessionStore.Kind = defaultConfig.SessionStore.Kind
	}
}

func (c *Config) Validate() (err error) {
	if err = c.Network.Validate(); err != nil {
		return
	}
	if c.Host != HostBrowser && c.Host != HostServer {
		return errors.Errorf("invalid host mode: '%s'", c.Host)
	}
	switch c.SessionStore.Kind {
	case SessionStoreMemory:
	case SessionStoreFile, SessionStoreSqlite:
		if c.SessionStore.Path == "" {
			return errors.Errorf("session store '%s' requires a path", c.SessionStore.Kind)
		}
	default:
		return errors.Errorf("invalid session store: '%s'", c.SessionStore.Kind)
	}
	return
}

// Timeout is the approval timeout, zero meaning the caller's context alone
// bounds the wait.
func (c *Config) Timeout() time.Duration {
	if c.ApprovalTimeout == nil {
		return DefaultApprovalTimeout
	}
	return *c.ApprovalTimeout
}

func (c *Config) Local() bool {
	return c.LocalConstruction == nil || *c.LocalConstruction
}

// LoadConfig reads a YAML config from path, or from DESO_CONFIG when path
// is empty. With neither set the defaults are returned. DESO_LOG_LEVEL
// overrides the file's log level, and overrides run after both, before
// defaults are filled in.
func LoadConfig(path string, overrides ...func(*Config)) (config *Config, err error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	config = &Config{}
	if path != "" {
		var raw []byte
		raw, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrap(err, "unable to read config file")
			return
		}
		if err = yaml.Unmarshal(raw, config); err != nil {
			err = errors.Wrap(err, "unable to parse config file")
			return
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		config.LogLevel = level
	}

	for _, override := range overrides {
		override(config)
	}

	config.setDefaults()
	if err = config.Validate(); err != nil {
		return
	}
	if err = SetLogLevel(config.LogLevel); err != nil {
		return
	}

	return
}

// OpenSessionStore builds the store the config describes.
func (c *Config) OpenSessionStore() (store SessionStore, err error) {
	switch c.SessionStore.Kind {
	case SessionStoreFile:
		return NewFileSessionStore(c.SessionStore.Path), nil
	case SessionStoreSqlite:
		var sqlite *SqliteSessionStore
		if sqlite, err = NewSqliteSessionStore(c.SessionStore.Path); err != nil {
			return
		}
		return sqlite, nil
	case SessionStoreMemory, "":
		return NewInMemorySessionStore(), nil
	}
	err = errors.Errorf("invalid session store: '%s'", c.SessionStore.Kind)
	return
}
