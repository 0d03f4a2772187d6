package automaton

import (
	"iter"
	"sync"
)

// Hashable is implemented by values that can key a HashMap. Values that
// are Equals must return the same Hash.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap maps keys by content rather than by Go identity: two StateSets
// holding the same members find the same entry. Keys whose hashes collide
// share a bucket and are told apart by Equals.
type HashMap[K Hashable, V any] struct {
	mutex   sync.RWMutex
	buckets map[uint64][]hashEntry[K, V]
	size    int
}

type hashEntry[K Hashable, V any] struct {
	key   K
	value V
}

type hashMapOptions struct {
	capacity int
}

type HashMapOption func(*hashMapOptions)

// WithCapacity sizes the map for about capacity keys.
func WithCapacity(capacity int) HashMapOption {
	return func(o *hashMapOptions) {
		o.capacity = max(capacity, 0)
	}
}

func NewHashMap[K Hashable, V any](opts ...HashMapOption) *HashMap[K, V] {
	options := &hashMapOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &HashMap[K, V]{
		buckets: make(map[uint64][]hashEntry[K, V], options.capacity),
	}
}

// Set inserts or replaces the value stored under key.
func (m *HashMap[K, V]) Set(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	h := key.Hash()
	bucket := m.buckets[h]
	for i := range bucket {
		if bucket[i].key.Equals(key) {
			bucket[i].value = value
			return
		}
	}
	m.buckets[h] = append(bucket, hashEntry[K, V]{key: key, value: value})
	m.size++
}

// Get returns the value stored under key.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, e := range m.buckets[key.Hash()] {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

func (m *HashMap[K, V]) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.size
}

// All yields every entry in no particular order. The map must not be
// modified during iteration.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
