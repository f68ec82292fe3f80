package domain

// Zero overwrites sensitive byte material in place. Call it on plaintext
// key and secret buffers as soon as they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
