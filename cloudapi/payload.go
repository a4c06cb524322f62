package cloudapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/url"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// PayloadError means the request body could not be built, usually because the
// json_file argument is missing or is not JSON.
type PayloadError struct {
	Path string
	Err  error
}

func (e *PayloadError) Error() string {
	return "loading payload " + e.Path + ": " + e.Err.Error()
}

func (e *PayloadError) Cause() error { return e.Err }

// LoadJSONFile reads path and returns its JSON document re-encoded compactly.
func LoadJSONFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, &PayloadError{path, err}
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &PayloadError{path, errors.Wrap(err, "invalid json")}
	}
	if dec.More() {
		return nil, &PayloadError{path, errors.New("invalid json: trailing data after document")}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, &PayloadError{path, err}
	}
	return out, nil
}

type body struct {
	data        []byte
	contentType string
}

func (d *Dispatcher) buildBody(call *Call) (*body, error) {
	switch call.Route.Body {
	case QueryBody:
		return jsonBody(map[string]interface{}{"cached": d.opts.Cached})
	case IdentityBody:
		return jsonBody(map[string]interface{}{"email": d.opts.Identity, "cached": d.opts.Cached})
	case JSONFileBody:
		data, err := LoadJSONFile(call.JSONFile)
		if err != nil {
			return nil, err
		}
		return &body{data, contentTypeJSON}, nil
	case EmptyBody:
		return &body{[]byte("{}"), contentTypeJSON}, nil
	case FormBody:
		form := url.Values{}
		for _, p := range call.Route.Params {
			form.Set(p, call.Values[p])
		}
		return &body{[]byte(form.Encode()), contentTypeForm}, nil
	}
	return nil, nil
}

func jsonBody(v interface{}) (*body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &body{data, contentTypeJSON}, nil
}
