// Package httpclient builds the HTTP client used to talk to the cloud API.
package httpclient

import (
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Client is the part of *http.Client (and *pester.Client) we depend on, so
// tests can swap in anything that answers requests.
type Client interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

// MakePesterClient returns a client that makes 1+retries attempts with
// exponential backoff. retries == 0 means a single best-effort attempt.
func MakePesterClient(retries int, timeout time.Duration) *pester.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = retries + 1 // 0 and 1 both mean 1 try total
	client.Timeout = timeout
	client.KeepLog = false
	client.LogHook = func(e pester.ErrEntry) {
		log.Warnf("Request attempt %d failed: %s %s: %v", e.Attempt, e.Method, e.URL, e.Err)
	}
	return client
}
