package hashtable

import (
	"errors"
	"math"

	"github.com/edsrzf/mmap-go"
	"github.com/webbmaffian/go-hashtable/internal/arena"
	"github.com/webbmaffian/go-hashtable/internal/utils"
)

// Largest bucket count a table can be created with.
const MaxCapacity = math.MaxInt32

// Preallocated links are capped; the arena grows as entries are inserted.
const initialLinks = 1024

// Initialize a new table with a fixed number of buckets. The bucket count
// never changes for the lifetime of the table. The table must be destroyed
// to release its memory.
func New(capacity int) (t *Table, err error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	size := uint64(capacity) * 4

	if capacity > MaxCapacity || size > math.MaxInt {
		return nil, exhausted(errors.New("capacity exceeds address space"))
	}

	t = &Table{
		capacity: capacity,
	}

	if t.buckets, err = utils.MapAnon(int(size)); err != nil {
		return nil, exhausted(err)
	}

	// Fresh mappings are zeroed, so every bucket starts out empty.
	t.heads = utils.BytesToSlice[uint32](t.buckets)

	if t.arena, err = arena.New(min(capacity, initialLinks)); err != nil {
		t.buckets.Unmap()
		return nil, exhausted(err)
	}

	return
}

// Hash table with separate chaining. Each bucket holds the index of the
// first link of its chain, or 0 if empty. New entries are pushed to the
// front of their chain and duplicates are kept, so the newest entry for a
// key shadows older ones until it is deleted.
//
// A table is not safe for concurrent use.
type Table struct {
	buckets  mmap.MMap
	heads    []uint32
	arena    *arena.Arena
	capacity int
}

// Number of buckets, or 0 once the table is destroyed.
func (t *Table) Cap() int {
	if t.destroyed() {
		return 0
	}

	return t.capacity
}

// Number of entries, shadowed duplicates included.
func (t *Table) Len() int {
	if t.destroyed() {
		return 0
	}

	return t.arena.Len()
}

// Insert adds key with val to the front of its bucket's chain. An existing
// entry for the same key is not replaced.
func (t *Table) Insert(key string, val int) (err error) {
	if err = t.check(key); err != nil {
		return
	}

	bucket := t.bucket(key)
	idx, err := t.arena.Alloc(key, int64(val))

	if err != nil {
		return exhausted(err)
	}

	t.arena.Link(idx).NextIdx = t.heads[bucket]
	t.heads[bucket] = idx

	return
}

// Get returns the value of the most recently inserted entry for key, or
// ErrNotFound.
func (t *Table) Get(key string) (val int, err error) {
	if err = t.check(key); err != nil {
		return
	}

	f := t.find(key)

	if !f.next() {
		return 0, ErrNotFound
	}

	return f.val(), nil
}

// Delete removes the most recently inserted entry for key. Older duplicates
// stay in place. Deleting a missing key is not an error.
func (t *Table) Delete(key string) (err error) {
	if err = t.check(key); err != nil {
		return
	}

	f := t.find(key)

	if !f.next() {
		return
	}

	if f.prevIdx == 0 {
		t.heads[f.bucket] = f.nextIdx
	} else {
		t.arena.Link(f.prevIdx).NextIdx = f.nextIdx
	}

	t.arena.Free(f.idx)
	return
}

// Count returns how many entries are stored for key.
func (t *Table) Count(key string) (count int, err error) {
	if err = t.check(key); err != nil {
		return
	}

	f := t.find(key)

	for f.next() {
		count++
	}

	return
}

// Bucket returns the index of the bucket key belongs to.
func (t *Table) Bucket(key string) (bucket int, err error) {
	if err = t.check(key); err != nil {
		return
	}

	return t.bucket(key), nil
}

// Chain returns the keys stored in a bucket, newest first.
func (t *Table) Chain(bucket int) (keys []string, err error) {
	if t.destroyed() {
		return nil, ErrDestroyed
	}

	if bucket < 0 || bucket >= t.capacity {
		return nil, ErrInvalidBucket
	}

	for idx := t.heads[bucket]; idx != 0; idx = t.arena.Link(idx).NextIdx {
		keys = append(keys, string(t.arena.Key(idx)))
	}

	return
}

// Destroy releases every entry of every chain, then the table's memory.
// Any further call on the table returns ErrDestroyed.
func (t *Table) Destroy() (err error) {
	if t.destroyed() {
		return ErrDestroyed
	}

	for bucket, idx := range t.heads {
		for idx != 0 {
			next := t.arena.Link(idx).NextIdx
			t.arena.Free(idx)
			idx = next
		}

		t.heads[bucket] = 0
	}

	var leaked error

	if t.arena.Len() != 0 || t.arena.KeyBytes() != 0 {
		leaked = ErrLeaked
	}

	err = errors.Join(leaked, t.arena.Close(), t.buckets.Unmap())
	t.heads, t.arena = nil, nil

	return
}

func (t *Table) destroyed() bool {
	return t.heads == nil
}

func (t *Table) check(key string) error {
	if t.destroyed() {
		return ErrDestroyed
	}

	if key == "" {
		return ErrInvalidKey
	}

	return nil
}

func (t *Table) bucket(key string) int {
	return int(Hash(key) % uint32(t.capacity))
}

func (t *Table) find(key string) finder {
	bucket := t.bucket(key)

	return finder{
		arena:   t.arena,
		key:     key,
		bucket:  bucket,
		nextIdx: t.heads[bucket],
	}
}
