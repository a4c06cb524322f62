package client

import (
	"github.com/spf13/cobra"

	"github.com/astute-tec/cloudctl/cloudapi"
	clierror "github.com/astute-tec/cloudctl/common/errors"
)

// routeCmd sends one request to the endpoint its route describes.
type routeCmd struct {
	route *cloudapi.Route
}

func (c *routeCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   c.route.Usage(),
		Short: c.route.Short,
		Args:  cobra.ExactArgs(len(c.route.Args())),
	}
}

func (c *routeCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	call, err := c.route.Bind(args)
	if err != nil {
		return clierror.NewError(err, clierror.UsageFailureExitCode)
	}
	return cl.dispatcher.Do(cmd.Context(), call)
}
