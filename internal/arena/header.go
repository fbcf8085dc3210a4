package arena

import (
	"math"
	"unsafe"
)

const (
	minLinks    = 16
	minKeyBytes = 256

	maxInitialLinks = 1 << 24

	// Index 0 terminates chains, so the last usable index is one below the
	// slot count.
	maxLinks = math.MaxUint32
)

var linkSize = int(unsafe.Sizeof(Link{}))

// Link is one entry record. It holds no Go pointers, so it can live in
// mapped memory.
type Link struct {
	NextIdx  uint32
	KeyLen   uint32
	KeyOff   uint64
	Val      int64
	Occupied bool
}

func newHeader(links int) header {
	if links < minLinks {
		links = minLinks
	} else if links > maxInitialLinks {
		links = maxInitialLinks
	}

	keys := uint64(links) * 8

	if keys < minKeyBytes {
		keys = minKeyBytes
	}

	return header{
		linkCap: uint32(links + 1),
		linkTop: 1,
		keyCap:  keys,
	}
}

type header struct {
	linkCap uint32 // Slots mapped, including the reserved slot 0.
	linkTop uint32 // First slot that has never been handed out.
	freeIdx uint32 // Head of the free list, threaded through NextIdx.
	length  uint32 // Occupied links.
	keyCap  uint64
	keyTop  uint64
	keyLive uint64 // Bytes referenced by occupied links.
}

func (h header) linksSize() int {
	return int(h.linkCap) * linkSize
}
