package common

// WipeByteArray overwrites a password buffer once it has been sent.
func WipeByteArray(b []byte) {
	clear(b)
}
