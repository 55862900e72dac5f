package media

import (
	"context"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// Allocator decodes resolved files into resources for one cache kind.
type Allocator interface {
	// Extensions returns the supported file extensions, lower case with a
	// leading dot (e.g. ".png").
	Extensions() []string

	// Allocate decodes the contents of the file at path.
	// Returns CodeDecodeFailure if data cannot be parsed as its claimed kind.
	Allocate(path string, data []byte) (Resource, error)
}

// entry is a cached resource and the number of tracked holders.
type entry struct {
	object Resource
	users  int
}

// Cache is a reference-counted, lazily populated resource cache.
//
// Names resolve against an ordered list of search directories, the most
// recently added directory first. The first lookup of a name decodes the file
// through the cache's Allocator; every later lookup returns the same object.
//
// All methods are safe for concurrent use. The resolve, decode and insert
// steps of Get run under one lock, so a name is never decoded twice.
type Cache struct {
	alloc      Allocator
	extensions map[string]struct{}
	fs         core.ReadFS
	logger     *Logger

	entries     map[string]*entry
	searchPaths []string
	stats       Stats

	mu sync.Mutex
}

// NewCache creates an empty cache that decodes files with alloc.
//
// By default, NewCache reads from the local filesystem rooted at "/". A
// custom filesystem can be provided via WithFilesystem.
func NewCache(alloc Allocator, opts ...Option) *Cache {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.fs == nil {
		options.fs = billy.NewLocal()
	}
	if options.logger == nil {
		options.logger = NopLogger()
	}

	extensions := make(map[string]struct{})
	for _, ext := range alloc.Extensions() {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	c := &Cache{
		alloc:      alloc,
		extensions: extensions,
		fs:         options.fs,
		logger:     options.logger,
		entries:    make(map[string]*entry),
	}
	for _, dir := range options.searchPaths {
		c.AddSearchPath(dir)
	}
	return c
}

// AddSearchPath appends dir to the search list, giving it the highest
// resolution priority. A directory already in the list is moved to the end
// instead of being duplicated.
func (c *Cache) AddSearchPath(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchPaths = slices.DeleteFunc(c.searchPaths, func(p string) bool { return p == dir })
	c.searchPaths = append(c.searchPaths, dir)
}

// RemoveSearchPath removes dir from the search list.
// Returns true if the directory was present.
func (c *Cache) RemoveSearchPath(dir string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.Index(c.searchPaths, dir)
	if i < 0 {
		return false
	}
	c.searchPaths = slices.Delete(c.searchPaths, i, i+1)
	return true
}

// SearchPaths returns a copy of the search list in insertion order.
// Resolution walks it from the end.
func (c *Cache) SearchPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.searchPaths)
}

// SupportedExtensions returns the extensions this cache accepts, sorted.
func (c *Cache) SupportedExtensions() []string {
	exts := make([]string, 0, len(c.extensions))
	for ext := range c.extensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// IsSupported reports whether name has an extension this cache can decode.
// The comparison ignores case.
func (c *Cache) IsSupported(name string) bool {
	_, ok := c.extensions[strings.ToLower(path.Ext(name))]
	return ok
}

// Get returns the resource for name.
//
// A cached name returns its existing object. Otherwise the name must have a
// supported extension (CodeUnsupportedResourceKind) and is searched for in the
// search paths, most recently added first. If no directory contains it, Get
// returns ok == false and a nil error. A found file is decoded
// (CodeDecodeFailure on malformed content) and cached.
//
// Tracked lookups (the default) count the caller as a holder who must later
// call Release. Untracked lookups borrow the object without changing the count;
// an entry first created by an untracked lookup starts with zero holders.
//
// Example:
//
//	res, ok, err := cache.Get(ctx, "spinner.svg")
//	if err != nil {
//	    return err
//	}
//	if ok {
//	    defer cache.Release("spinner.svg")
//	}
func (c *Cache) Get(ctx context.Context, name string, opts ...GetOption) (Resource, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeUnavailable, "context cancelled",
			makeContext("resource", name))
	}

	options := &getOptions{}
	for _, opt := range opts {
		opt(options)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[name]; ok {
		if !options.untracked {
			ent.users++
		}
		c.stats.Hits++
		c.logger.logCacheHit(ctx, name, ent.users)
		return ent.object, true, nil
	}

	if !c.IsSupported(name) {
		return nil, false, newUnsupportedError(name, path.Ext(name))
	}

	filePath, found := c.resolve(ctx, name)
	if !found {
		c.stats.Misses++
		c.logger.logCacheMiss(ctx, name, len(c.searchPaths))
		return nil, false, nil
	}

	object, err := c.allocate(filePath)
	if err != nil {
		c.stats.DecodeFailures++
		c.logger.Warn(ctx, "failed to decode resource", "resource", name, "path", filePath, "error", err)
		return nil, false, wrapDecodeError(err, name, filePath)
	}

	users := 1
	if options.untracked {
		users = 0
	}
	c.entries[name] = &entry{object: object, users: users}
	c.stats.Decodes++
	c.logger.Debug(ctx, "resource decoded", "resource", name, "path", filePath, "kind", object.Kind().String())

	return object, true, nil
}

// Peek is shorthand for Get with Untracked.
func (c *Cache) Peek(ctx context.Context, name string) (Resource, bool, error) {
	return c.Get(ctx, name, Untracked())
}

// Release drops one holder of name, never going below zero.
// When no holders remain the entry is removed, unless KeepEntry is given.
//
// Returns CodeResourceNotTracked if name is not cached.
func (c *Cache) Release(name string, opts ...ReleaseOption) error {
	options := &releaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[name]
	if !ok {
		return newNotTrackedError(name)
	}

	ent.users = max(0, ent.users-1)
	if !options.keep && ent.users == 0 {
		c.evict(context.Background(), name, "released")
	}
	return nil
}

// Clear removes entries that have no holders and returns how many were
// removed. With Force, every entry is removed.
func (c *Cache) Clear(opts ...ClearOption) int {
	options := &clearOptions{}
	for _, opt := range opts {
		opt(options)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for name, ent := range c.entries {
		if options.force || ent.users <= 0 {
			reason := "unused"
			if options.force {
				reason = "forced"
			}
			c.evict(context.Background(), name, reason)
			removed++
		}
	}
	return removed
}

// Users returns the holder count for name and whether it is cached.
func (c *Cache) Users(name string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[name]
	if !ok {
		return 0, false
	}
	return ent.users, true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache activity.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// resolve returns the first existing file for name, walking the search paths
// from the most recently added. Callers must hold c.mu.
func (c *Cache) resolve(ctx context.Context, name string) (string, bool) {
	for i := len(c.searchPaths) - 1; i >= 0; i-- {
		candidate := path.Join(c.searchPaths[i], name)
		info, err := c.fs.Stat(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				// An unreadable candidate is skipped like a missing one.
				c.logger.Warn(ctx, "failed to check resource path", "path", candidate, "error", err)
			}
			continue
		}
		if !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// allocate reads and decodes the file at filePath. Callers must hold c.mu.
func (c *Cache) allocate(filePath string) (Resource, error) {
	data, err := c.fs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return c.alloc.Allocate(filePath, data)
}

// evict removes name from the cache. Callers must hold c.mu.
func (c *Cache) evict(ctx context.Context, name, reason string) {
	delete(c.entries, name)
	c.stats.Evictions++
	c.logger.logEviction(ctx, name, reason)
}
