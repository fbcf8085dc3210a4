package arena

import (
	"math"

	"github.com/edsrzf/mmap-go"
	"github.com/webbmaffian/go-hashtable/internal/utils"
)

// Initialize a new arena with room for roughly the given number of links.
// Both the links and the key bytes live in anonymous mappings that grow on
// demand. The arena must be closed to release them.
func New(links int) (a *Arena, err error) {
	a = &Arena{
		head:  newHeader(links),
		limit: maxLinks,
	}

	if a.links, err = utils.MapAnon(a.head.linksSize()); err != nil {
		return nil, err
	}

	if a.keys, err = utils.MapAnon(int(a.head.keyCap)); err != nil {
		a.links.Unmap()
		return nil, err
	}

	return
}

// Index-addressed store of chain links and the key bytes they own.
// Pointers and slices returned by Link and Key are only valid until the
// next call to Alloc, which may move the underlying memory.
type Arena struct {
	links mmap.MMap
	keys  mmap.MMap
	head  header
	limit uint32 // Most link slots the arena may grow to, slot 0 included.
}

// Limit caps the number of links the arena will hold. Alloc fails with
// ErrFull once the cap is reached and no freed link is left. A limit below
// the current capacity takes effect at the next growth.
func (a *Arena) Limit(links int) {
	if links < 0 {
		links = 0
	}

	if uint64(links) >= maxLinks {
		a.limit = maxLinks
		return
	}

	a.limit = uint32(links) + 1
}

// Alloc stores an owned copy of key together with val in an unlinked,
// occupied link and returns its index. The index is never 0.
func (a *Arena) Alloc(key string, val int64) (idx uint32, err error) {
	if a.links == nil {
		return 0, ErrClosed
	}

	if err = a.reserveKey(len(key)); err != nil {
		return
	}

	if idx, err = a.nextIdx(); err != nil {
		return
	}

	off := a.head.keyTop
	copy(a.keys[off:], key)
	a.head.keyTop += uint64(len(key))
	a.head.keyLive += uint64(len(key))
	a.head.length++

	link := a.Link(idx)
	link.NextIdx, link.KeyLen, link.KeyOff, link.Val, link.Occupied = 0, uint32(len(key)), off, val, true

	return
}

// Free releases the link at idx and the key bytes it owns. The caller must
// already have unlinked it from its chain. Freeing a free link is a no-op.
func (a *Arena) Free(idx uint32) {
	link := a.Link(idx)

	if !link.Occupied {
		return
	}

	clear(a.keys[link.KeyOff : link.KeyOff+uint64(link.KeyLen)])
	a.head.keyLive -= uint64(link.KeyLen)
	a.head.length--

	*link = Link{NextIdx: a.head.freeIdx}
	a.head.freeIdx = idx
}

func (a *Arena) Link(idx uint32) *Link {
	off := int(idx) * linkSize
	return utils.BytesToPointer[Link](a.links[off : off+linkSize])
}

func (a *Arena) Key(idx uint32) []byte {
	link := a.Link(idx)
	return a.keys[link.KeyOff : link.KeyOff+uint64(link.KeyLen)]
}

func (a *Arena) KeyEqual(idx uint32, key string) bool {
	return string(a.Key(idx)) == key
}

// Occupied links.
func (a *Arena) Len() int {
	return int(a.head.length)
}

// Key bytes owned by occupied links.
func (a *Arena) KeyBytes() int {
	return int(a.head.keyLive)
}

// Link slots currently mapped, not counting the reserved slot 0.
func (a *Arena) Cap() int {
	return int(a.head.linkCap) - 1
}

// Close unmaps all memory. Counters stay readable afterwards, so a caller
// can check that everything was freed before closing.
func (a *Arena) Close() (err error) {
	if a.links == nil {
		return ErrClosed
	}

	if err = a.links.Unmap(); err != nil {
		return
	}

	a.links = nil

	if err = a.keys.Unmap(); err != nil {
		return
	}

	a.keys = nil
	return
}

func (a *Arena) nextIdx() (idx uint32, err error) {
	if idx = a.head.freeIdx; idx != 0 {
		a.head.freeIdx = a.Link(idx).NextIdx
		return
	}

	if a.head.linkTop == a.head.linkCap {
		if err = a.growLinks(); err != nil {
			return
		}
	}

	idx = a.head.linkTop
	a.head.linkTop++
	return
}

func (a *Arena) growLinks() (err error) {
	if a.head.linkCap >= a.limit {
		return ErrFull
	}

	head := a.head
	size := uint64(head.linkCap) * 2

	if size > uint64(a.limit) {
		size = uint64(a.limit)
	}

	head.linkCap = uint32(size)
	data, err := utils.MapAnon(head.linksSize())

	if err != nil {
		return
	}

	copy(data, a.links[:int(a.head.linkTop)*linkSize])

	old := a.links
	a.links, a.head = data, head

	return old.Unmap()
}

func (a *Arena) reserveKey(n int) error {
	if uint64(n) > math.MaxUint32 {
		return ErrKeySize
	}

	need := uint64(n)

	if a.head.keyTop+need <= a.head.keyCap {
		return nil
	}

	// Freed bytes are dropped when moving, so only grow if the live bytes
	// would fill more than half of the new mapping.
	size := a.head.keyCap

	for size < (a.head.keyLive+need)*2 {
		size *= 2
	}

	return a.moveKeys(size)
}

// moveKeys copies the key bytes of every occupied link into a new mapping
// of the given size, packed in link order.
func (a *Arena) moveKeys(size uint64) (err error) {
	data, err := utils.MapAnon(int(size))

	if err != nil {
		return
	}

	var top uint64

	for idx := uint32(1); idx < a.head.linkTop; idx++ {
		link := a.Link(idx)

		if !link.Occupied {
			continue
		}

		copy(data[top:], a.keys[link.KeyOff:link.KeyOff+uint64(link.KeyLen)])
		link.KeyOff = top
		top += uint64(link.KeyLen)
	}

	old := a.keys
	a.keys = data
	a.head.keyCap = size
	a.head.keyTop = top

	return old.Unmap()
}
