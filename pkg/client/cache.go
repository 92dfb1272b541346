package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenCache is the client-durable credential store. Implementations must be
// safe for concurrent use; the workflow clears the cache before its one
// refresh-and-retry.
type TokenCache interface {
	Get() (string, bool)
	Set(token string) error
	Clear()
}

type MemoryCache struct {
	mu    sync.Mutex
	token string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.token != ""
}

func (c *MemoryCache) Set(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	return nil
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// FileCache persists the token across process restarts, the session-durable
// analogue of a browser's local storage.
type FileCache struct {
	mu   sync.Mutex
	path string
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (c *FileCache) Set(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.path, []byte(token), 0o600)
}

func (c *FileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = os.Remove(c.path)
}
