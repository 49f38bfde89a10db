package params

// Param is one operation value together with its pending bit.
type Param[T comparable] struct {
	value T
	dirty bool
}

// Set stores v and marks the parameter pending.
func (p *Param[T]) Set(v T) {
	p.value = v
	p.dirty = true
}

// Store replaces the value without touching the pending bit.
func (p *Param[T]) Store(v T) {
	p.value = v
}

// Mark flags the parameter pending.
func (p *Param[T]) Mark() {
	p.dirty = true
}

// Clear drops the pending bit.
func (p *Param[T]) Clear() {
	p.dirty = false
}

// Value returns the stored value.
func (p Param[T]) Value() T {
	return p.value
}

// Dirty reports whether the parameter still needs applying.
func (p Param[T]) Dirty() bool {
	return p.dirty
}
