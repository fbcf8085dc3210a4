package utils

import (
	"errors"

	"github.com/edsrzf/mmap-go"
)

// MapAnon maps size bytes of zeroed, private memory that is not backed by
// any file.
func MapAnon(size int) (mmap.MMap, error) {
	if size <= 0 {
		return nil, errors.New("mapping size must be positive")
	}

	return mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
}
