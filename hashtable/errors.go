package hashtable

import "fmt"

type tableError string

var _ error = tableError("")

func (err tableError) Error() string {
	return string(err)
}

const (
	ErrInvalidCapacity = tableError("capacity must be positive")
	ErrInvalidKey      = tableError("key must not be empty")
	ErrInvalidBucket   = tableError("bucket out of range")
	ErrNotFound        = tableError("key not found")
	ErrExhausted       = tableError("out of memory")
	ErrDestroyed       = tableError("table is destroyed")
	ErrLeaked          = tableError("entries outlived the table")
)

func exhausted(err error) error {
	return fmt.Errorf("%w: %w", ErrExhausted, err)
}
