// Package clientconfig resolves the settings of one cloudctl invocation from
// defaults, an optional YAML file, the environment and command-line flags, in
// that order of increasing precedence.
package clientconfig

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/astute-tec/cloudctl/common/httpclient"
	"github.com/astute-tec/cloudctl/token"
)

const (
	DefaultServer   = "localhost"
	DefaultLogLevel = "warn"
)

// Environment variables consulted at startup. CACHED and VERBOSE are the
// names older scripts already export.
const (
	EnvConfig    = "CLOUDCTL_CONFIG"
	EnvServer    = "CLOUDCTL_SERVER"
	EnvTokenFile = "CLOUDCTL_TOKEN_FILE"
	EnvIdentity  = "CLOUDCTL_IDENTITY"
	EnvLogLevel  = "CLOUDCTL_LOG_LEVEL"
	EnvCached    = "CACHED"
	EnvVerbose   = "VERBOSE"
)

type Config struct {
	Server    string        `yaml:"server"`
	TokenFile string        `yaml:"token_file"`
	Identity  string        `yaml:"identity"`
	Cached    bool          `yaml:"cached"`
	Verbose   bool          `yaml:"verbose"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
	LogLevel  string        `yaml:"log_level"`
	Stats     bool          `yaml:"stats"`

	// ConfigFile is where the YAML settings came from, if anywhere.
	ConfigFile string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Server:    DefaultServer,
		TokenFile: token.DefaultTokenFile,
		Identity:  token.DefaultIdentity,
		Timeout:   httpclient.DefaultTimeout,
		LogLevel:  DefaultLogLevel,
	}
}

// LoadFile overlays the settings present in the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	c.ConfigFile = path
	log.Debugf("Loaded config from %s", path)
	return nil
}

// Save writes c as YAML to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config")
	}
	c.ConfigFile = path
	return nil
}

// ApplyEnv overlays whatever the environment sets. Only non-empty values count.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvServer); v != "" {
		c.Server = v
	}
	if v := getenv(EnvTokenFile); v != "" {
		c.TokenFile = v
	}
	if v := getenv(EnvIdentity); v != "" {
		c.Identity = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if IsTruthy(getenv(EnvCached)) {
		c.Cached = true
	}
	if IsTruthy(getenv(EnvVerbose)) {
		c.Verbose = true
	}
}

// IsTruthy accepts the spellings shell users reach for when turning a switch on.
func IsTruthy(v string) bool {
	switch v {
	case "TRUE", "true", "YES", "yes", "ON", "on", "1":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return errors.New("server must not be empty")
	}
	if strings.Contains(c.Server, "/") {
		return fmt.Errorf("server %q should be host[:port] without a scheme or path", c.Server)
	}
	if c.TokenFile == "" {
		return errors.New("token file must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level is the parsed LogLevel; call Validate first.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
