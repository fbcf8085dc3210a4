package utils

import (
	"unsafe"
)

// BytesToPointer reinterprets the start of b as a *T. The slice must be at
// least as long as T and aligned for it, and T must not contain pointers.
func BytesToPointer[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// BytesToSlice views b as a slice of T. Trailing bytes that don't fill a
// whole T are ignored.
func BytesToSlice[T any](b []byte) []T {
	var zero T
	n := len(b) / int(unsafe.Sizeof(zero))

	if n == 0 {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
