package hashtable

// Hash is a rolling hash over the bytes of key: each byte is added to the
// accumulator after multiplying it by 127, wrapping at 32 bits.
func Hash(key string) (h uint32) {
	for i := 0; i < len(key); i++ {
		h = h*127 + uint32(key[i])
	}

	return
}
