package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astute-tec/cloudctl/token"
)

type showTokenCmd struct{}

func (c *showTokenCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "show-token",
		Short: "Print the cached session token and whether it is still usable",
		Args:  cobra.NoArgs,
	}
}

func (c *showTokenCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	cred, err := cl.session.Cached()
	if _, unreadable := err.(*token.CacheReadError); unreadable {
		fmt.Fprintf(cl.env.Out, "Token cache %s is unreadable and will be replaced on the next request: %v\n", cl.cache.Path(), err)
		return nil
	}
	if err != nil {
		return err
	}
	if cred == nil {
		fmt.Fprintf(cl.env.Out, "No token cached at %s\n", cl.cache.Path())
		return nil
	}
	printCredential(cl, cred)
	return nil
}

type refreshTokenCmd struct{}

func (c *refreshTokenCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-token",
		Short: "Request a new session token and cache it, whatever is cached now",
		Args:  cobra.NoArgs,
	}
}

func (c *refreshTokenCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	cred, err := cl.session.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	printCredential(cl, cred)
	return nil
}

func printCredential(cl *simpleCLIClient, cred *token.Credential) {
	out := cl.env.Out
	fmt.Fprintf(out, "id: %s\n", cred.ID)
	fmt.Fprintf(out, "created_at: %s\n", cred.CreatedAt)
	fmt.Fprintf(out, "ttl: %d\n", cred.TTL)
	if until, err := cred.UsableUntil(); err == nil {
		fmt.Fprintf(out, "usable_until: %s\n", until.Format(token.TimeLayout))
	} else {
		fmt.Fprintf(out, "usable_until: unknown (%v)\n", err)
	}
	fmt.Fprintf(out, "expired: %t\n", cl.session.Expired(cred))
}
