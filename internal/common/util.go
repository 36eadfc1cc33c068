package common

// WipeByteArray zeroes the buffer in place. Used to scrub passwords from
// memory once they are no longer needed. Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
