package indirectvec

// Close destroys every element. It is the vector's destructor: an
// externally-backed vector must be closed before its buffers are reused.
// Close is idempotent and always returns nil.
func (v *Vector[T]) Close() error {
	if v == nil {
		return nil
	}
	n := v.Len()
	v.Clear()
	if n > 0 {
		v.opts.logger.LogRelease(n, v.external)
	}
	return nil
}
