package store

import (
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Directory is a resolved handle to a namespace directory.
type Directory struct {
	Namespace string
	Path      string
}

// DirectoryCache maps namespaces to resolved directories. Entries are filled
// lazily on first use and kept for the lifetime of the cache. Failed
// resolutions are not cached.
type DirectoryCache struct {
	mu      sync.RWMutex
	root    string
	dirs    map[string]Directory
	group   singleflight.Group
	files   FileProvider
	quota   QuotaManager
	request int64
	granted bool
	logger  *slog.Logger
}

// NewDirectoryCache creates a cache resolving namespaces under root. quota
// is asked for request bytes once, before the first directory is created.
func NewDirectoryCache(root string, files FileProvider, quota QuotaManager, request int64, logger *slog.Logger) *DirectoryCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryCache{
		root:    root,
		dirs:    make(map[string]Directory),
		files:   files,
		quota:   quota,
		request: request,
		logger:  logger,
	}
}

// Resolve returns the directory for namespace, creating it if needed.
// Concurrent first calls for the same namespace share one resolution.
func (c *DirectoryCache) Resolve(namespace string) (Directory, error) {
	if !validateName(namespace) {
		return Directory{}, &DirectoryError{Namespace: namespace, Err: ErrInvalidNamespace}
	}
	c.mu.RLock()
	dir, ok := c.dirs[namespace]
	c.mu.RUnlock()
	if ok {
		return dir, nil
	}
	v, err, _ := c.group.Do(namespace, func() (any, error) {
		return c.resolve(namespace)
	})
	if err != nil {
		return Directory{}, &DirectoryError{Namespace: namespace, Err: err}
	}
	return v.(Directory), nil
}

func (c *DirectoryCache) resolve(namespace string) (Directory, error) {
	c.mu.RLock()
	dir, ok := c.dirs[namespace]
	c.mu.RUnlock()
	if ok {
		return dir, nil
	}
	if err := c.requestQuota(); err != nil {
		return Directory{}, err
	}
	dir = Directory{Namespace: namespace, Path: filepath.Join(c.root, namespace)}
	if err := c.files.CreateDirectory(dir.Path); err != nil {
		return Directory{}, err
	}
	c.mu.Lock()
	c.dirs[namespace] = dir
	c.mu.Unlock()
	c.logger.Debug("resolved directory", "namespace", namespace, "path", dir.Path)
	return dir, nil
}

func (c *DirectoryCache) requestQuota() error {
	c.mu.RLock()
	granted := c.granted
	c.mu.RUnlock()
	if granted {
		return nil
	}
	n, err := c.quota.Request(c.request)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.granted = true
	c.mu.Unlock()
	c.logger.Debug("storage quota granted", "requested", c.request, "granted", n)
	return nil
}

// Len returns the number of cached namespaces.
func (c *DirectoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dirs)
}
