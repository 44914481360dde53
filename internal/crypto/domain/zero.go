package domain

// Zero overwrites each buffer with zeros. It is best effort: copies made by the
// runtime or by callers are not reached. Nil buffers are ignored.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
