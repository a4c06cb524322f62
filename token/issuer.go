package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/astute-tec/cloudctl/common/httpclient"
)

const (
	DefaultIdentity = "cloud@astute-tec.com"
	TokensPath      = "/api/v1/tokens"
)

// Issuer obtains a brand-new credential from the server.
type Issuer interface {
	Issue(ctx context.Context) (*Credential, error)
}

// IssueError covers every way of failing to get a credential: transport
// errors, non-2xx answers and responses that don't describe a usable token.
type IssueError struct {
	Server string
	Err    error
}

func (e *IssueError) Error() string {
	return fmt.Sprintf("obtaining token from %s: %v", e.Server, e.Err)
}

func (e *IssueError) Cause() error { return e.Err }

// HTTPIssuer POSTs the configured identity to the tokens endpoint. It never retries.
type HTTPIssuer struct {
	server   string
	identity string
	client   httpclient.Client
}

func NewHTTPIssuer(server, identity string, client httpclient.Client) *HTTPIssuer {
	if identity == "" {
		identity = DefaultIdentity
	}
	return &HTTPIssuer{server: server, identity: identity, client: client}
}

type issueRequest struct {
	Email string `json:"email"`
}

type issueResponse struct {
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
	TTL       *int64 `json:"ttl"`
}

func (i *HTTPIssuer) Issue(ctx context.Context) (*Credential, error) {
	body, err := json.Marshal(issueRequest{Email: i.identity})
	if err != nil {
		return nil, i.fail(err)
	}
	uri := "http://" + i.server + TokensPath
	req, err := http.NewRequest("POST", uri, bytes.NewReader(body))
	if err != nil {
		return nil, i.fail(err)
	}
	req = req.WithContext(ctx)
	req.Host = i.server
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Connection", "keep-alive")

	log.Infof("Requesting a new token from %s for %s", uri, i.identity)
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, i.fail(errors.Wrap(err, "sending token request"))
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, i.fail(errors.Wrap(err, "reading token response"))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, i.fail(fmt.Errorf("server answered %s: %s", resp.Status, bytes.TrimSpace(data)))
	}

	var r issueResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, i.fail(errors.Wrap(err, "malformed token response"))
	}
	if r.Token == "" {
		return nil, i.fail(errors.New("token response has no token"))
	}
	if r.TTL == nil {
		return nil, i.fail(errors.New("token response has no ttl"))
	}
	c := &Credential{ID: r.Token, CreatedAt: r.CreatedAt, TTL: *r.TTL}
	if _, err := c.IssuedAt(); err != nil {
		return nil, i.fail(err)
	}
	return c, nil
}

func (i *HTTPIssuer) fail(err error) error {
	return &IssueError{Server: i.server, Err: err}
}
