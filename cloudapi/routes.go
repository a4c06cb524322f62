// Package cloudapi describes the REST endpoints of the cloud management API
// and sends authenticated requests to them.
package cloudapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const APIPrefix = "/api/v1"

// Positional argument names. Path placeholders use the same names.
const (
	PlatformID = "platform_id"
	CloudID    = "cloud_id"
	ClusterID  = "cluster_id"
	ImageID    = "image_id"
	SizeID     = "size_id"
	TemplateID = "template_id"
	MachineID  = "machine_id"
	VolumeID   = "volume_id"
	NetworkID  = "network_id"

	// JSONFile is the trailing positional of routes whose body comes from a file.
	JSONFile = "json_file"
)

// BodyKind says what, if anything, a route sends as its request body.
type BodyKind int

const (
	// NoBody sends nothing.
	NoBody BodyKind = iota
	// QueryBody sends {"cached": <bool>}.
	QueryBody
	// IdentityBody sends {"email": <identity>, "cached": <bool>}.
	IdentityBody
	// JSONFileBody sends the contents of the json_file positional.
	JSONFileBody
	// EmptyBody sends {}.
	EmptyBody
	// FormBody urlencodes the route's positionals.
	FormBody
)

var bodyKindNames = map[BodyKind]string{
	NoBody:       "none",
	QueryBody:    "query",
	IdentityBody: "identity",
	JSONFileBody: "json",
	EmptyBody:    "empty",
	FormBody:     "form",
}

func (k BodyKind) String() string {
	if s, ok := bodyKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("BodyKind(%d)", int(k))
}

// Route maps one subcommand onto one endpoint.
type Route struct {
	Name   string
	Short  string
	Method string
	// Path is relative to APIPrefix, with {name} placeholders for positionals.
	Path   string
	Params []string
	Body   BodyKind
}

// Args lists the positional arguments the subcommand takes, in order.
func (r *Route) Args() []string {
	args := append([]string{}, r.Params...)
	if r.Body == JSONFileBody {
		args = append(args, JSONFile)
	}
	return args
}

// Usage renders "name <arg> <arg>" for help output.
func (r *Route) Usage() string {
	parts := []string{r.Name}
	for _, a := range r.Args() {
		parts = append(parts, "<"+a+">")
	}
	return strings.Join(parts, " ")
}

// Call is a route bound to concrete positional values.
type Call struct {
	Route    *Route
	Values   map[string]string
	JSONFile string
}

// Bind matches args against the route's positionals.
func (r *Route) Bind(args []string) (*Call, error) {
	want := r.Args()
	if len(args) != len(want) {
		return nil, fmt.Errorf("%s takes %d argument(s) (%s), got %d",
			r.Name, len(want), strings.Join(want, " "), len(args))
	}
	call := &Call{Route: r, Values: map[string]string{}}
	for i, name := range r.Params {
		if args[i] == "" {
			return nil, fmt.Errorf("%s: %s must not be empty", r.Name, name)
		}
		call.Values[name] = args[i]
	}
	if r.Body == JSONFileBody {
		call.JSONFile = args[len(args)-1]
	}
	return call, nil
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// URL expands the route's path for server using values.
func (r *Route) URL(server string, values map[string]string) (string, error) {
	var missing []string
	path := placeholderRe.ReplaceAllStringFunc(r.Path, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%s: no value for %s", r.Name, strings.Join(missing, ", "))
	}
	return "http://" + server + APIPrefix + path, nil
}

var validMethods = map[string]bool{"GET": true, "POST": true, "PATCH": true, "DELETE": true}

// ValidateRoutes checks a route table for mistakes that would otherwise only
// show up when somebody runs the broken subcommand.
func ValidateRoutes(routes []Route) error {
	seen := map[string]bool{}
	for i := range routes {
		r := &routes[i]
		if r.Name == "" {
			return fmt.Errorf("route %d has no name", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate route %q", r.Name)
		}
		seen[r.Name] = true
		if !validMethods[r.Method] {
			return fmt.Errorf("route %q: unsupported method %q", r.Name, r.Method)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("route %q: path %q must start with /", r.Name, r.Path)
		}
		if _, ok := bodyKindNames[r.Body]; !ok {
			return fmt.Errorf("route %q: unknown body kind %v", r.Name, r.Body)
		}
		if err := validateParams(r); err != nil {
			return errors.Wrapf(err, "route %q", r.Name)
		}
	}
	return nil
}

func validateParams(r *Route) error {
	declared := map[string]bool{}
	for _, p := range r.Params {
		if p == JSONFile {
			return fmt.Errorf("%s is implied by the json body kind", JSONFile)
		}
		if declared[p] {
			return fmt.Errorf("positional %s declared twice", p)
		}
		declared[p] = true
	}
	used := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(r.Path, -1) {
		if !declared[m[1]] {
			return fmt.Errorf("placeholder {%s} is not a positional", m[1])
		}
		used[m[1]] = true
	}
	if r.Body == FormBody {
		return nil
	}
	for _, p := range r.Params {
		if !used[p] {
			return fmt.Errorf("positional %s is not used in path %s", p, r.Path)
		}
	}
	return nil
}

// Lookup finds a route by subcommand name.
func Lookup(routes []Route, name string) (*Route, bool) {
	for i := range routes {
		if routes[i].Name == name {
			return &routes[i], true
		}
	}
	return nil, false
}
