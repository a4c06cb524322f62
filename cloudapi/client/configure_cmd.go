package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	clierror "github.com/astute-tec/cloudctl/common/errors"
	"github.com/astute-tec/cloudctl/config/clientconfig"
)

// Prompter asks the user for one value, offering def as the answer.
type Prompter interface {
	Prompt(label, def string, validate func(string) error) (string, error)
}

type promptuiPrompter struct{}

func (promptuiPrompter) Prompt(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
	}
	return prompt.Run()
}

type configureCmd struct{}

func (c *configureCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "configure <file.yaml>",
		Short: "Interactively write a config file for use with --config",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *configureCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	path := args[0]
	// Environment and flag overrides belong to this invocation, not the file.
	config := clientconfig.Default()
	seed := path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		seed = cl.config.ConfigFile
	}
	if seed != "" {
		if err := config.LoadFile(seed); err != nil {
			return clierror.NewError(err, clierror.ConfigFailureExitCode)
		}
	}

	questions := []struct {
		label    string
		value    *string
		validate func(string) error
	}{
		{"API server (host[:port])", &config.Server, validateServer},
		{"Identity (email)", &config.Identity, notEmpty},
		{"Token cache file", &config.TokenFile, notEmpty},
	}
	for _, q := range questions {
		answer, err := cl.env.Prompter.Prompt(q.label, *q.value, q.validate)
		if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
			return clierror.NewError(errors.New("configure aborted"), clierror.UsageFailureExitCode)
		}
		if err != nil {
			return errors.Wrapf(err, "prompting for %s", q.label)
		}
		*q.value = strings.TrimSpace(answer)
	}

	if err := config.Validate(); err != nil {
		return clierror.NewError(err, clierror.ConfigFailureExitCode)
	}
	if err := config.Save(path); err != nil {
		return clierror.NewError(err, clierror.ConfigFailureExitCode)
	}
	fmt.Fprintf(cl.env.Out, "Wrote %s\n", path)
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validateServer(s string) error {
	if err := notEmpty(s); err != nil {
		return err
	}
	if strings.Contains(s, "/") {
		return errors.New("host[:port] only, no scheme or path")
	}
	return nil
}
