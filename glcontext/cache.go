package glcontext

import (
	"github.com/hashicorp/golang-lru/simplelru"
)

// CacheKey identifies a cached driver object. Keys must be comparable and
// report which other objects the cached one depends on, so that deleting
// a buffer or texture also drops every cached object built from it.
type CacheKey interface {
	UsesObject(kind ObjectKind, name uint32) bool
}

// ObjectCache is an LRU of driver objects created on demand (samplers,
// vertex arrays, framebuffers). Evicted objects are deleted.
// It is only touched from inside Exec so it needs no locking of its own.
type ObjectCache struct {
	kind ObjectKind
	lru  *simplelru.LRU

	hits   uint64
	misses uint64
}

func newObjectCache(kind ObjectKind, size int, onEvict func(name uint32)) (*ObjectCache, error) {

	oc := &ObjectCache{kind: kind}

	l, err := simplelru.NewLRU(size, func(key, value interface{}) {
		onEvict(value.(uint32))
	})
	if err != nil {
		return nil, err
	}

	oc.lru = l
	return oc, nil
}

func (oc *ObjectCache) Kind() ObjectKind {
	return oc.kind
}

func (oc *ObjectCache) Get(key CacheKey) (name uint32, ok bool) {

	v, ok := oc.lru.Get(key)
	if !ok {
		oc.misses++
		return 0, false
	}

	oc.hits++
	return v.(uint32), true
}

// Add stores name under key, evicting (and deleting) the least recently
// used object when the cache is full.
func (oc *ObjectCache) Add(key CacheKey, name uint32) {
	oc.lru.Add(key, name)
}

func (oc *ObjectCache) Remove(key CacheKey) {
	oc.lru.Remove(key)
}

// RemoveName removes the entry holding the object name, deleting it.
// It reports whether the name was cached.
func (oc *ObjectCache) RemoveName(name uint32) bool {

	for _, k := range oc.lru.Keys() {

		v, ok := oc.lru.Peek(k)
		if !ok || v.(uint32) != name {
			continue
		}

		oc.lru.Remove(k)
		return true
	}

	return false
}

// PurgeUsing removes and deletes every cached object whose key uses the
// given object.
func (oc *ObjectCache) PurgeUsing(kind ObjectKind, name uint32) int {

	n := 0
	for _, k := range oc.lru.Keys() {

		if !k.(CacheKey).UsesObject(kind, name) {
			continue
		}

		oc.lru.Remove(k)
		n++
	}

	return n
}

func (oc *ObjectCache) Purge() {
	oc.lru.Purge()
}

func (oc *ObjectCache) Len() int {
	return oc.lru.Len()
}

func (oc *ObjectCache) Stats() (hits, misses uint64) {
	return oc.hits, oc.misses
}
