package arena

type arenaError string

var _ error = arenaError("")

func (err arenaError) Error() string {
	return string(err)
}

const (
	ErrFull    = arenaError("arena is full")
	ErrClosed  = arenaError("arena is closed")
	ErrKeySize = arenaError("key too large")
)
