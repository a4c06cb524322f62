package clientconfig

import (
	"github.com/spf13/pflag"
)

// Flags holds the raw command-line values. Only flags the user actually set
// take part in ResolveWithEnv.
type Flags struct {
	Config
	fs *pflag.FlagSet
}

// Register adds the global flags to fs and returns their backing values.
func Register(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	fs.StringVarP(&f.Server, "server", "s", d.Server, "API server address, host[:port]")
	fs.BoolVarP(&f.Cached, "cached", "c", false, "Fetch data in cached mode")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Print each request's URL, headers and body")
	fs.StringVar(&f.ConfigFile, "config", "", "YAML config file")
	fs.StringVar(&f.TokenFile, "token-file", d.TokenFile, "where the session token is cached")
	fs.StringVar(&f.Identity, "identity", d.Identity, "identity (email) tokens are requested for")
	fs.DurationVar(&f.Timeout, "timeout", d.Timeout, "HTTP timeout per attempt")
	fs.IntVar(&f.Retries, "retries", 0, "extra attempts after a failed request (0 means none)")
	fs.StringVar(&f.LogLevel, "log-level", d.LogLevel, "panic|fatal|error|warn|info|debug|trace")
	fs.BoolVar(&f.Stats, "stats", false, "print request and token metrics to stderr when done")
	return f
}

// ResolveWithEnv builds the effective config, reading the environment through getenv.
func (f *Flags) ResolveWithEnv(getenv func(string) string) (*Config, error) {
	c := Default()

	path := getenv(EnvConfig)
	if f.fs.Changed("config") {
		path = f.ConfigFile
	}
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}

	c.ApplyEnv(getenv)

	if f.fs.Changed("server") {
		c.Server = f.Server
	}
	if f.fs.Changed("cached") {
		c.Cached = f.Cached
	}
	if f.fs.Changed("verbose") {
		c.Verbose = f.Verbose
	}
	if f.fs.Changed("token-file") {
		c.TokenFile = f.TokenFile
	}
	if f.fs.Changed("identity") {
		c.Identity = f.Identity
	}
	if f.fs.Changed("timeout") {
		c.Timeout = f.Timeout
	}
	if f.fs.Changed("retries") {
		c.Retries = f.Retries
	}
	if f.fs.Changed("log-level") {
		c.LogLevel = f.LogLevel
	}
	if f.fs.Changed("stats") {
		c.Stats = f.Stats
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
