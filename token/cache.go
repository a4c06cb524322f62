package token

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultTokenFile = "data/token.json"

// Cache persists the last credential between invocations.
type Cache interface {
	// Load returns the cached credential, or (nil, nil) if there is none.
	// Unreadable or malformed content is reported as a *CacheReadError.
	Load() (*Credential, error)

	// Save replaces the cached credential. Failures are *CacheWriteError.
	Save(c *Credential) error
}

// CacheReadError means the cache exists but could not be used. Callers treat
// it as a miss.
type CacheReadError struct {
	Path string
	Err  error
}

func (e *CacheReadError) Error() string {
	return "reading token cache " + e.Path + ": " + e.Err.Error()
}

func (e *CacheReadError) Cause() error { return e.Err }

// CacheWriteError means a fresh credential could not be persisted.
type CacheWriteError struct {
	Path string
	Err  error
}

func (e *CacheWriteError) Error() string {
	return "writing token cache " + e.Path + ": " + e.Err.Error()
}

func (e *CacheWriteError) Cause() error { return e.Err }

// On-disk layout: {"token": {"id": ..., "created_at": ..., "ttl": ...}}
type cacheFile struct {
	Token *Credential `json:"token"`
}

// FileCache keeps the credential as JSON in a single local file.
type FileCache struct {
	path string
}

func NewFileCache(path string) *FileCache {
	if path == "" {
		path = DefaultTokenFile
	}
	return &FileCache{path: path}
}

func (f *FileCache) Path() string {
	return f.path
}

func (f *FileCache) Load() (*Credential, error) {
	data, err := ioutil.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("No token cache at %s", f.path)
			return nil, nil
		}
		return nil, &CacheReadError{f.path, err}
	}
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, &CacheReadError{f.path, errors.Wrap(err, "malformed json")}
	}
	if cf.Token == nil {
		return nil, &CacheReadError{f.path, errors.New("no token entry")}
	}
	return cf.Token, nil
}

func (f *FileCache) Save(c *Credential) error {
	if c == nil {
		return &CacheWriteError{f.path, errors.New("nil credential")}
	}
	data, err := json.Marshal(cacheFile{Token: c})
	if err != nil {
		return &CacheWriteError{f.path, err}
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return &CacheWriteError{f.path, err}
		}
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return &CacheWriteError{f.path, err}
	}
	if err := os.Chmod(f.path, 0600); err != nil {
		return &CacheWriteError{f.path, err}
	}
	log.Debugf("Saved token to %s", f.path)
	return nil
}
