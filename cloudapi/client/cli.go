// Package client is the cloudctl command tree: one subcommand per API route
// plus a few local commands for managing the cached token and config.
package client

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/luci/go-render/render"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astute-tec/cloudctl/cloudapi"
	clierror "github.com/astute-tec/cloudctl/common/errors"
	"github.com/astute-tec/cloudctl/common/httpclient"
	"github.com/astute-tec/cloudctl/common/stats"
	"github.com/astute-tec/cloudctl/config/clientconfig"
	"github.com/astute-tec/cloudctl/token"
)

// CLIClient runs one cloudctl invocation.
type CLIClient interface {
	Exec() error
}

// Env is everything an invocation takes from the process it runs in.
type Env struct {
	Args   []string
	Out    io.Writer
	Err    io.Writer
	Getenv func(string) string
	Now    func() time.Time
	// Dial returns the HTTP client used for both token issuance and API calls.
	Dial     func(*clientconfig.Config) httpclient.Client
	Prompter Prompter
}

func DefaultEnv() Env {
	return Env{
		Args:     os.Args[1:],
		Out:      os.Stdout,
		Err:      os.Stderr,
		Getenv:   os.Getenv,
		Now:      time.Now,
		Dial:     DialPester,
		Prompter: promptuiPrompter{},
	}
}

// DialPester honors the configured timeout and retry count.
func DialPester(c *clientconfig.Config) httpclient.Client {
	return httpclient.MakePesterClient(c.Retries, c.Timeout)
}

type simpleCLIClient struct {
	rootCmd *cobra.Command
	env     Env
	flags   *clientconfig.Flags

	// Populated once flags are parsed, before any command runs.
	config     *clientconfig.Config
	stat       stats.StatsReceiver
	cache      *token.FileCache
	session    *token.Session
	dispatcher *cloudapi.Dispatcher

	// Set once cobra accepted the command line; errors before that are usage errors.
	started bool
}

func NewSimpleCLIClient(env Env) (CLIClient, error) {
	if err := cloudapi.ValidateRoutes(cloudapi.Routes); err != nil {
		return nil, err
	}

	c := &simpleCLIClient{env: env}
	c.rootCmd = &cobra.Command{
		Use:               "cloudctl",
		Short:             "cloudctl is a command-line client to the cloud management API",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	c.rootCmd.SetArgs(env.Args)
	c.rootCmd.SetOut(env.Out)
	c.rootCmd.SetErr(env.Err)
	c.flags = clientconfig.Register(c.rootCmd.PersistentFlags())

	for i := range cloudapi.Routes {
		c.addCmd(&routeCmd{route: &cloudapi.Routes[i]})
	}
	c.addCmd(&showTokenCmd{})
	c.addCmd(&refreshTokenCmd{})
	c.addCmd(&configureCmd{})

	return c, nil
}

// Exec runs the command line. Returned errors carry the exit code for main.
func (c *simpleCLIClient) Exec() error {
	err := c.rootCmd.Execute()
	if c.config != nil && c.config.Stats {
		fmt.Fprintln(c.env.Err, string(c.stat.Render(true)))
	}
	if err == nil {
		return nil
	}
	if !c.started {
		fmt.Fprintf(c.env.Err, "Run '%s --help' for usage.\n", c.rootCmd.Name())
		return clierror.NewError(err, clierror.UsageFailureExitCode)
	}
	return clierror.NewError(err, exitCodeFor(err))
}

// setup resolves the config and wires the session and dispatcher. It runs
// after cobra has validated flags and positionals.
func (c *simpleCLIClient) setup(cmd *cobra.Command, args []string) error {
	c.started = true
	config, err := c.flags.ResolveWithEnv(c.env.Getenv)
	if err != nil {
		return clierror.NewError(err, clierror.ConfigFailureExitCode)
	}
	c.config = config
	log.SetOutput(c.env.Err)
	log.SetLevel(config.Level())
	log.Debugf("Running %s with config %s", cmd.CommandPath(), render.Render(config))

	c.stat = stats.DefaultStatsReceiver()
	client := c.env.Dial(config)
	c.cache = token.NewFileCache(config.TokenFile)
	issuer := token.NewHTTPIssuer(config.Server, config.Identity, client)
	c.session = token.NewSession(c.cache, issuer, c.stat, c.env.Now)
	c.dispatcher = cloudapi.NewDispatcher(cloudapi.Options{
		Server:   config.Server,
		Identity: config.Identity,
		Cached:   config.Cached,
		Verbose:  config.Verbose,
	}, client, c.session, c.env.Out, c.stat)
	return nil
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}

type causer interface {
	Cause() error
}

// exitCodeFor maps the first typed failure in err's cause chain to an exit code.
func exitCodeFor(err error) clierror.ExitCode {
	for err != nil {
		switch e := err.(type) {
		case *clierror.ExitCodeError:
			return e.GetExitCode()
		case *cloudapi.PayloadError:
			return clierror.UsageFailureExitCode
		case *token.CacheWriteError:
			return clierror.CacheWriteFailureExitCode
		case *token.IssueError:
			return clierror.IssueFailureExitCode
		case *cloudapi.RequestError:
			return clierror.RequestFailureExitCode
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return clierror.GenericFailureExitCode
}
