package cloudapi

var (
	platform        = []string{PlatformID}
	platformCloud   = []string{PlatformID, CloudID}
	platformMachine = []string{PlatformID, CloudID, MachineID}
)

// Routes is every API subcommand the client knows about.
var Routes = []Route{
	// Tokens and platforms
	{Name: "list-tokens", Short: "List tokens issued to the configured identity", Method: "GET", Path: "/tokens", Body: IdentityBody},
	{Name: "list-platforms", Short: "List platforms", Method: "GET", Path: "/platforms", Body: QueryBody},
	{Name: "add-platform", Short: "Register a platform", Method: "POST", Path: "/platforms", Body: JSONFileBody},
	{Name: "update-platform", Short: "Update a platform", Method: "PATCH", Path: "/platforms", Body: JSONFileBody},
	{Name: "ping-platform", Short: "Check that a platform is reachable", Method: "POST", Path: "/platform/ping", Params: platform, Body: FormBody},
	{Name: "delete-platform", Short: "Delete a platform", Method: "DELETE", Path: "/platforms/{platform_id}", Params: platform},

	// Platform inventory
	{Name: "list-clouds", Short: "List the clouds of a platform", Method: "GET", Path: "/platforms/{platform_id}/clouds", Params: platform, Body: QueryBody},
	{Name: "list-volume-types", Short: "List volume types", Method: "GET", Path: "/platforms/{platform_id}/volume_types", Params: platform, Body: QueryBody},
	{Name: "list-images", Short: "List images", Method: "GET", Path: "/platforms/{platform_id}/images", Params: platform, Body: QueryBody},
	{Name: "get-image", Short: "Show an image", Method: "GET", Path: "/platforms/{platform_id}/images/{image_id}", Params: []string{PlatformID, ImageID}, Body: QueryBody},
	{Name: "list-sizes", Short: "List machine sizes", Method: "GET", Path: "/platforms/{platform_id}/sizes", Params: platform, Body: QueryBody},
	{Name: "get-size", Short: "Show a machine size", Method: "GET", Path: "/platforms/{platform_id}/sizes/{size_id}", Params: []string{PlatformID, SizeID}, Body: QueryBody},
	{Name: "list-pf-networks", Short: "List platform-wide networks", Method: "GET", Path: "/platforms/{platform_id}/networks", Params: platform, Body: QueryBody},
	{Name: "list-clusters", Short: "List clusters", Method: "GET", Path: "/platforms/{platform_id}/clusters", Params: platform, Body: QueryBody},
	{Name: "list-hosts", Short: "List hosts", Method: "GET", Path: "/platforms/{platform_id}/hosts", Params: platform, Body: QueryBody},

	// Templates
	{Name: "list-templates", Short: "List templates", Method: "GET", Path: "/platforms/{platform_id}/templates", Params: platform, Body: QueryBody},
	{Name: "get-template", Short: "Show a template", Method: "GET", Path: "/platforms/{platform_id}/templates/{template_id}", Params: []string{PlatformID, TemplateID}, Body: QueryBody},
	{Name: "delete-template", Short: "Delete a template", Method: "DELETE", Path: "/platforms/{platform_id}/templates/{template_id}", Params: []string{PlatformID, TemplateID}},
	{Name: "template-action", Short: "Run an action on a template", Method: "POST", Path: "/platforms/{platform_id}/templates/{template_id}/action", Params: []string{PlatformID, TemplateID}, Body: JSONFileBody},

	// Machines
	{Name: "list-machines", Short: "List machines in a cloud", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines", Params: platformCloud, Body: QueryBody},
	{Name: "create-machine", Short: "Create a machine", Method: "POST", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines", Params: platformCloud, Body: JSONFileBody},
	{Name: "create-machine-from-template", Short: "Create a machine from a template", Method: "POST", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines-from-template", Params: platformCloud, Body: JSONFileBody},
	{Name: "get-machine", Short: "Show a machine", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines/{machine_id}", Params: platformMachine, Body: QueryBody},
	{Name: "get-machine-console", Short: "Get a console URL for a machine", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines/{machine_id}/console", Params: platformMachine, Body: QueryBody},
	{Name: "machine-action", Short: "Run an action (start, stop, ...) on a machine", Method: "POST", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines/{machine_id}", Params: platformMachine, Body: JSONFileBody},
	{Name: "delete-machine", Short: "Delete a machine", Method: "DELETE", Path: "/platforms/{platform_id}/clouds/{cloud_id}/machines/{machine_id}", Params: platformMachine},

	// Volumes, networks, security groups
	{Name: "list-volumes", Short: "List volumes in a cloud", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/volumes", Params: platformCloud, Body: QueryBody},
	{Name: "get-volume", Short: "Show a volume", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/volumes/{volume_id}", Params: []string{PlatformID, CloudID, VolumeID}, Body: QueryBody},
	{Name: "list-networks", Short: "List networks in a cloud", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/networks", Params: platformCloud, Body: QueryBody},
	{Name: "get-network", Short: "Show a network", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/networks/{network_id}", Params: []string{PlatformID, CloudID, NetworkID}, Body: QueryBody},
	{Name: "list-security-groups", Short: "List security groups in a cloud", Method: "GET", Path: "/platforms/{platform_id}/clouds/{cloud_id}/security-groups", Params: platformCloud, Body: QueryBody},

	// Sync: ask the server to refresh its view of a platform
	{Name: "sync-volume-type", Short: "Sync volume types", Method: "POST", Path: "/platforms/{platform_id}/volume_type/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-cloud", Short: "Sync clouds", Method: "POST", Path: "/platforms/{platform_id}/cloud/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-cluster", Short: "Sync clusters", Method: "POST", Path: "/platforms/{platform_id}/cluster/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-image", Short: "Sync images", Method: "POST", Path: "/platforms/{platform_id}/image/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-template", Short: "Sync templates", Method: "POST", Path: "/platforms/{platform_id}/template/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-pf-network", Short: "Sync platform-wide networks", Method: "POST", Path: "/platforms/{platform_id}/network/sync", Params: platform, Body: EmptyBody},
	{Name: "sync-network", Short: "Sync networks described by a JSON file", Method: "POST", Path: "/platforms/{platform_id}/network/sync", Params: platform, Body: JSONFileBody},
	{Name: "sync-host", Short: "Sync hosts", Method: "POST", Path: "/platforms/{platform_id}/host/sync", Params: platform, Body: JSONFileBody},
	{Name: "sync-machine", Short: "Sync machines", Method: "POST", Path: "/platforms/{platform_id}/machine/sync", Params: platform, Body: JSONFileBody},
	{Name: "sync-volume", Short: "Sync volumes", Method: "POST", Path: "/platforms/{platform_id}/volume/sync", Params: platform, Body: JSONFileBody},

	// Pollers: configure the server's periodic update jobs
	{Name: "poll-image", Short: "Configure the image update poller", Method: "POST", Path: "/platforms/{platform_id}/image/update_poller", Params: platform, Body: JSONFileBody},
	{Name: "poll-template", Short: "Configure the template update poller", Method: "POST", Path: "/platforms/{platform_id}/template/update_poller", Params: platform, Body: JSONFileBody},
	{Name: "poll-host", Short: "Configure the host update poller of a cluster", Method: "POST", Path: "/platforms/{platform_id}/clusters/{cluster_id}/update_poller", Params: []string{PlatformID, ClusterID}, Body: JSONFileBody},
	{Name: "poll-machine", Short: "Configure the machine update poller of a cloud", Method: "POST", Path: "/platforms/{platform_id}/clouds/{cloud_id}/update_poller", Params: platformCloud, Body: JSONFileBody},
	{Name: "poll-volume", Short: "Configure the volume update poller of a cloud", Method: "POST", Path: "/platforms/{platform_id}/clouds/{cloud_id}/update_volume_poller", Params: platformCloud, Body: JSONFileBody},
}
