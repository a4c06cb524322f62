package main

import (
	"os"

	"github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"

	"github.com/astute-tec/cloudctl/cloudapi/client"
	"github.com/astute-tec/cloudctl/common/errors"
	"github.com/astute-tec/cloudctl/common/log/hooks"
)

// CLI binary for the cloud management API
//	Supported commands: (see "-h" for all options)
//		list-platforms, get-machine <platform_id> <cloud_id> <machine_id>, ...
//		show-token, refresh-token
//		configure <file.yaml>
//	Global flags:
//		-s/--server [<host:port> of the API server]
//		-c/--cached, -v/--verbose (also CACHED=yes, VERBOSE=yes)
//		--log-level [<error|warn|info|debug> level and above should be logged]

func main() {
	log.AddHook(hooks.NewContextHook())
	if id, err := uuid.NewV4(); err == nil {
		log.AddHook(hooks.NewFieldHook("invocation", id.String()))
	}

	cl, err := client.NewSimpleCLIClient(client.DefaultEnv())
	if err != nil {
		log.Fatal("Failed to create cloudctl client: ", err)
	}

	if err := cl.Exec(); err != nil {
		log.Error("Error running cloudctl: ", err)
		os.Exit(int(errors.ExitCodeOf(err)))
	}
}
