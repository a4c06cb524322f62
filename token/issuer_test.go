package token

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

// tokenServer answers POST /api/v1/tokens with the given status and body and
// records the last request it saw.
type tokenServer struct {
	*httptest.Server
	status int
	body   string

	hits    int
	headers http.Header
	host    string
	email   string
}

func newTokenServer(status int, body string) *tokenServer {
	ts := &tokenServer{status: status, body: body}
	r := mux.NewRouter()
	r.HandleFunc(TokensPath, ts.handle).Methods("POST")
	ts.Server = httptest.NewServer(r)
	return ts
}

func (ts *tokenServer) handle(w http.ResponseWriter, req *http.Request) {
	ts.hits++
	ts.headers = req.Header
	ts.host = req.Host
	data, _ := ioutil.ReadAll(req.Body)
	var payload struct{ Email string }
	json.Unmarshal(data, &payload)
	ts.email = payload.Email
	w.WriteHeader(ts.status)
	w.Write([]byte(ts.body))
}

func (ts *tokenServer) addr() string {
	return strings.TrimPrefix(ts.URL, "http://")
}

func TestIssueSuccess(t *testing.T) {
	ts := newTokenServer(http.StatusOK,
		`{"token": "abc123", "created_at": "2024-01-01 00:00:00.000000", "ttl": 3600}`)
	defer ts.Close()

	issuer := NewHTTPIssuer(ts.addr(), "", http.DefaultClient)
	c, err := issuer.Issue(context.Background())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	expected := Credential{ID: "abc123", CreatedAt: "2024-01-01 00:00:00.000000", TTL: 3600}
	if *c != expected {
		t.Fatalf("expected %+v, got %+v", expected, *c)
	}
	if ts.hits != 1 {
		t.Fatalf("expected one request, got %d", ts.hits)
	}
	if ts.email != DefaultIdentity {
		t.Fatalf("expected default identity, got %q", ts.email)
	}
	if ts.headers.Get("Content-Type") != "application/json" || ts.headers.Get("Accept") != "*/*" {
		t.Fatalf("unexpected headers %v", ts.headers)
	}
	if ts.host != ts.addr() {
		t.Fatalf("expected Host %s, got %s", ts.addr(), ts.host)
	}
	if ts.headers.Get("Authorization") != "" {
		t.Fatal("token requests must not carry an Authorization header")
	}
}

func TestIssueCustomIdentity(t *testing.T) {
	ts := newTokenServer(http.StatusCreated,
		`{"token": "abc123", "created_at": "2024-01-01 00:00:00.000000", "ttl": 60}`)
	defer ts.Close()

	if _, err := NewHTTPIssuer(ts.addr(), "ops@example.com", http.DefaultClient).Issue(context.Background()); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if ts.email != "ops@example.com" {
		t.Fatalf("expected configured identity, got %q", ts.email)
	}
}

func TestIssueFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "down"}`},
		{"unauthorized", http.StatusUnauthorized, `{"error": "unknown email"}`},
		{"not json", http.StatusOK, `<html>`},
		{"missing token", http.StatusOK, `{"created_at": "2024-01-01 00:00:00.000000", "ttl": 60}`},
		{"missing ttl", http.StatusOK, `{"token": "abc", "created_at": "2024-01-01 00:00:00.000000"}`},
		{"bad created_at", http.StatusOK, `{"token": "abc", "created_at": "soon", "ttl": 60}`},
		{"ttl not a number", http.StatusOK, `{"token": "abc", "created_at": "2024-01-01 00:00:00.000000", "ttl": "60"}`},
	}
	for _, test := range tests {
		ts := newTokenServer(test.status, test.body)
		c, err := NewHTTPIssuer(ts.addr(), "", http.DefaultClient).Issue(context.Background())
		ts.Close()
		if c != nil {
			t.Errorf("%s: expected no credential, got %+v", test.name, *c)
		}
		if _, ok := err.(*IssueError); !ok {
			t.Errorf("%s: expected *IssueError, got %T %v", test.name, err, err)
		}
		if ts.hits != 1 {
			t.Errorf("%s: issuance must not retry, server saw %d requests", test.name, ts.hits)
		}
	}
}

func TestIssueTransportFailure(t *testing.T) {
	ts := newTokenServer(http.StatusOK, "")
	addr := ts.addr()
	ts.Close()

	_, err := NewHTTPIssuer(addr, "", http.DefaultClient).Issue(context.Background())
	ie, ok := err.(*IssueError)
	if !ok {
		t.Fatalf("expected *IssueError, got %T %v", err, err)
	}
	if ie.Server != addr {
		t.Fatalf("error should name the server, got %q", ie.Server)
	}
}
