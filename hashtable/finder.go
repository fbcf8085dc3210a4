package hashtable

import "github.com/webbmaffian/go-hashtable/internal/arena"

// finder walks one chain and stops at every link holding key, remembering
// the link before it so the match can be unlinked.
type finder struct {
	arena   *arena.Arena
	key     string
	bucket  int
	prevIdx uint32
	idx     uint32
	nextIdx uint32
}

func (f *finder) next() bool {
	for f.nextIdx != 0 {
		f.prevIdx, f.idx = f.idx, f.nextIdx
		f.nextIdx = f.arena.Link(f.idx).NextIdx

		if f.arena.KeyEqual(f.idx, f.key) {
			return true
		}
	}

	return false
}

func (f *finder) val() int {
	return int(f.arena.Link(f.idx).Val)
}
