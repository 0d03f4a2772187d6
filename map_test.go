package automaton

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collidingKey hashes poorly so collisions are easy to build.
type collidingKey struct {
	part1 int
	part2 string
}

func (k collidingKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k collidingKey) Equals(other Hashable) bool {
	o, ok := other.(collidingKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

// otherKey shares hash values with collidingKey but is a different type.
type otherKey int

func (k otherKey) Hash() uint64 {
	return uint64(k)
}

func (k otherKey) Equals(other Hashable) bool {
	o, ok := other.(otherKey)
	return ok && k == o
}

func TestHashMap(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		hm := NewHashMap[collidingKey, string](WithCapacity(8))
		hm.Set(collidingKey{1, "a"}, "value1")

		val, ok := hm.Get(collidingKey{1, "a"})
		assert.True(t, ok)
		assert.Equal(t, "value1", val)

		val, ok = hm.Get(collidingKey{2, "b"})
		assert.False(t, ok)
		assert.Empty(t, val)
	})

	t.Run("replace", func(t *testing.T) {
		hm := NewHashMap[collidingKey, string]()
		hm.Set(collidingKey{1, "a"}, "v1")
		hm.Set(collidingKey{1, "a"}, "v2")

		val, _ := hm.Get(collidingKey{1, "a"})
		assert.Equal(t, "v2", val)
		assert.Equal(t, 1, hm.Size())
	})

	t.Run("negative capacity", func(t *testing.T) {
		hm := NewHashMap[collidingKey, int](WithCapacity(-3))
		hm.Set(collidingKey{}, 1)
		assert.Equal(t, 1, hm.Size())
	})
}

func TestHashMap_Collisions(t *testing.T) {
	hm := NewHashMap[collidingKey, string]()

	// All three hash to 2.
	key1 := collidingKey{1, "a"}
	key2 := collidingKey{0, "bb"}
	key3 := collidingKey{2, ""}
	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	require.Equal(t, 3, hm.Size())
	assert.Len(t, hm.buckets, 1)

	val, ok := hm.Get(key2)
	assert.True(t, ok)
	assert.Equal(t, "value2", val)

	hm.Set(key1, "value1b")
	assert.Equal(t, 3, hm.Size())
	val, ok = hm.Get(key1)
	assert.True(t, ok)
	assert.Equal(t, "value1b", val)
	val, ok = hm.Get(key3)
	assert.True(t, ok)
	assert.Equal(t, "value3", val)
}

func TestHashMap_MixedKeyTypes(t *testing.T) {
	hm := NewHashMap[Hashable, string]()
	hm.Set(collidingKey{1, "a"}, "value1")
	hm.Set(otherKey(2), "value2")

	val, ok := hm.Get(collidingKey{1, "a"})
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	val, ok = hm.Get(otherKey(2))
	assert.True(t, ok)
	assert.Equal(t, "value2", val)

	assert.Panics(t, func() { hm.Set(nil, "value") })
}

func TestHashMap_Concurrency(t *testing.T) {
	hm := NewHashMap[collidingKey, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := collidingKey{n, "test"}
			hm.Set(key, n)
			hm.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, hm.Size())

	seen := 0
	for k, v := range hm.All() {
		assert.Equal(t, k.part1, v)
		seen++
	}
	assert.Equal(t, 100, seen)
}

func TestHashMap_StateSetKeys(t *testing.T) {
	hm := NewHashMap[State, int]()
	hm.Set(NewNameSet("q0", "q1", "q2"), 7)
	hm.Set(NewStateSet(NewNameSet("q0"), NewNameSet("q1")), 9)
	hm.Set(Name("q0"), 1)

	val, ok := hm.Get(NewNameSet("q2", "q0", "q1"))
	assert.True(t, ok)
	assert.Equal(t, 7, val)

	val, ok = hm.Get(NewStateSet(NewNameSet("q1"), NewNameSet("q0")))
	assert.True(t, ok)
	assert.Equal(t, 9, val)

	_, ok = hm.Get(NewNameSet("q0", "q1"))
	assert.False(t, ok)

	// A name and the singleton set holding it are different states.
	_, ok = hm.Get(NewNameSet("q0"))
	assert.False(t, ok)

	sum := 0
	for _, v := range hm.All() {
		sum += v
	}
	assert.Equal(t, 17, sum)
}
