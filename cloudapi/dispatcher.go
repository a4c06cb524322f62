package cloudapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/astute-tec/cloudctl/common/httpclient"
	"github.com/astute-tec/cloudctl/common/stats"
	"github.com/astute-tec/cloudctl/token"
)

// Options are the per-invocation settings that shape every request.
type Options struct {
	Server   string
	Identity string
	// Cached asks the server to answer GETs from its cache.
	Cached bool
	// Verbose echoes the URL, headers and body of each request to the output.
	Verbose bool
}

// CredentialSource yields the credential to authenticate with. *token.Session
// is the production implementation.
type CredentialSource interface {
	Credential(ctx context.Context) (*token.Credential, error)
}

// RequestError means an API call did not succeed: the request could not be
// sent, or the server answered with a status >= 400.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: server answered %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Dispatcher turns a Call into one authenticated HTTP request and copies the
// raw response body to its output. Nothing is retried here.
type Dispatcher struct {
	opts   Options
	client httpclient.Client
	creds  CredentialSource
	out    io.Writer
	stat   stats.StatsReceiver
}

func NewDispatcher(opts Options, client httpclient.Client, creds CredentialSource, out io.Writer, stat stats.StatsReceiver) *Dispatcher {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Dispatcher{
		opts:   opts,
		client: client,
		creds:  creds,
		out:    out,
		stat:   stat.Scope(stats.RequestScope),
	}
}

// Do sends call. The response body is printed whatever the status; a status
// >= 400 is additionally returned as a *RequestError.
func (d *Dispatcher) Do(ctx context.Context, call *Call) error {
	uri, err := call.Route.URL(d.opts.Server, call.Values)
	if err != nil {
		return err
	}
	b, err := d.buildBody(call)
	if err != nil {
		return err
	}
	cred, err := d.creds.Credential(ctx)
	if err != nil {
		return err
	}

	req, err := d.newRequest(ctx, call.Route.Method, uri, b, cred)
	if err != nil {
		return &RequestError{Method: call.Route.Method, URL: uri, Err: err}
	}
	if d.opts.Verbose {
		d.echo(req, b)
	}
	log.Debugf("Sending %s %s headers: %s", req.Method, uri, spew.Sdump(req.Header))

	d.stat.Counter(stats.RequestSentCounter).Inc(1)
	latency := d.stat.Precision(time.Millisecond).Latency(stats.RequestLatency_ms).Time()
	resp, err := d.client.Do(req)
	if err != nil {
		latency.Stop()
		d.stat.Counter(stats.RequestErrCounter).Inc(1)
		return &RequestError{Method: req.Method, URL: uri, Err: errors.Wrap(err, "sending request")}
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	latency.Stop()
	if err != nil {
		d.stat.Counter(stats.RequestErrCounter).Inc(1)
		return &RequestError{Method: req.Method, URL: uri, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "reading response")}
	}
	fmt.Fprintln(d.out, string(data))

	if resp.StatusCode >= 400 {
		d.stat.Counter(stats.RequestErrCounter).Inc(1)
		log.Warnf("%s %s answered %s", req.Method, uri, resp.Status)
		return &RequestError{Method: req.Method, URL: uri, StatusCode: resp.StatusCode}
	}
	log.Infof("%s %s answered %s", req.Method, uri, resp.Status)
	return nil
}

func (d *Dispatcher) newRequest(ctx context.Context, method, uri string, b *body, cred *token.Credential) (*http.Request, error) {
	var reader io.Reader
	if b != nil {
		reader = bytes.NewReader(b.data)
	}
	req, err := http.NewRequest(method, uri, reader)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	// net/http ignores a "Host" header entry; the field is what gets sent.
	req.Host = d.opts.Server
	req.Header.Set("Authorization", cred.ID)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Connection", "keep-alive")
	if b != nil && b.contentType != "" {
		req.Header.Set("Content-Type", b.contentType)
	}
	return req, nil
}

func (d *Dispatcher) echo(req *http.Request, b *body) {
	fmt.Fprintf(d.out, "URL: %s\n", req.URL)
	names := []string{"Host"}
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	var headers []string
	for _, name := range names {
		value := req.Host
		if name != "Host" {
			value = req.Header.Get(name)
		}
		headers = append(headers, name+": "+value)
	}
	fmt.Fprintf(d.out, "HEADERS: {%s}\n", strings.Join(headers, ", "))
	if b != nil {
		fmt.Fprintf(d.out, "REQUEST BODY: %s\n", b.data)
	} else {
		fmt.Fprintln(d.out, "REQUEST BODY:")
	}
}
