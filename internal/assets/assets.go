// Package assets loads mesh and animation descriptions and shares them
// between models.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/internal/engine/animation"
	"github.com/Faultbox/skelanim/internal/engine/mesh"
)

const (
	// MeshExt is the file suffix of mesh descriptions.
	MeshExt = ".mesh.yaml"
	// AnimationExt is the file suffix of animation descriptions.
	AnimationExt = ".anim.yaml"
)

// Library loads assets from a directory and hands out shared, read-only
// handles. Each asset is parsed once.
type Library struct {
	dir        string
	meshes     *Cache[*mesh.Mesh]
	animations *Cache[*animation.Animation]
	log        *zap.Logger
	mu         sync.Mutex // serializes loads so a file is parsed once
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		dir:        dir,
		meshes:     NewCache[*mesh.Mesh](),
		animations: NewCache[*animation.Animation](),
		log:        log,
	}
}

// Dir returns the library root.
func (l *Library) Dir() string {
	return l.dir
}

// Mesh returns the named mesh, loading <dir>/<name>.mesh.yaml on first use.
func (l *Library) Mesh(name string) (*mesh.Mesh, error) {
	return load(l, l.meshes, name, MeshExt, ParseMesh)
}

// Animation returns the named animation, loading <dir>/<name>.anim.yaml
// on first use.
func (l *Library) Animation(name string) (*animation.Animation, error) {
	return load(l, l.animations, name, AnimationExt, ParseAnimation)
}

// AddMesh registers an in-memory mesh under its name.
func (l *Library) AddMesh(m *mesh.Mesh) {
	l.meshes.Set(m.Name(), m)
}

// AddAnimation registers an in-memory animation under its name.
func (l *Library) AddAnimation(a *animation.Animation) {
	l.animations.Set(a.Name(), a)
}

// MeshNames lists the mesh descriptions found in the directory.
func (l *Library) MeshNames() ([]string, error) {
	return l.list(MeshExt)
}

// AnimationNames lists the animation descriptions found in the directory.
func (l *Library) AnimationNames() ([]string, error) {
	return l.list(AnimationExt)
}

// Stats returns combined cache hits and misses.
func (l *Library) Stats() (hits, misses int) {
	mh, mm := l.meshes.Stats()
	ah, am := l.animations.Stats()
	return mh + ah, mm + am
}

// Clear drops every cached asset.
func (l *Library) Clear() {
	l.meshes.Clear()
	l.animations.Clear()
}

func (l *Library) list(ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.dir, "*"+ext))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(path), ext))
	}
	sort.Strings(names)
	return names, nil
}

func load[T any](l *Library, c *Cache[T], name, ext string, parse func([]byte) (T, error)) (T, error) {
	if v, ok := c.Get(name); ok {
		return v, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have loaded it while we waited
	if v, ok := c.Peek(name); ok {
		return v, nil
	}

	var zero T
	if name == "" || filepath.Base(name) != name {
		return zero, fmt.Errorf("invalid asset name %q", name)
	}
	path := filepath.Join(l.dir, name+ext)
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	v, err := parse(data)
	if err != nil {
		return zero, fmt.Errorf("parsing %s: %w", path, err)
	}
	c.Set(name, v)
	l.log.Debug("loaded asset", zap.String("path", path))
	return v, nil
}

// Cache is an in-memory cache of loaded assets.
type Cache[T any] struct {
	data map[string]T
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		data: make(map[string]T),
	}
}

// Get retrieves an item and records a hit or miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Peek retrieves an item without touching the stats.
func (c *Cache[T]) Peek(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[T]) Set(key string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Clear clears the cache.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]T)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[T]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
