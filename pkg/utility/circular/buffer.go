package circular

// Buffer is a fixed-capacity ring. Once full, a push overwrites the oldest
// element. Index 0 is the most recent element.
type Buffer[T any] struct {
	capacity uint

	head uint
	size uint
	data []T
}

func NewBuffer[T any](capacity uint) *Buffer[T] {
	if capacity == 0 {
		panic("capacity must be > 0")
	}
	return &Buffer[T]{
		capacity: capacity,
		data:     make([]T, capacity),
	}
}

func (b *Buffer[T]) Capacity() uint {
	return b.capacity
}

func (b *Buffer[T]) Size() uint {
	return b.size
}

func (b *Buffer[T]) IsFull() bool {
	return b.size == b.capacity
}

func (b *Buffer[T]) Push(value T) {
	b.data[b.head] = value
	b.head = (b.head + 1) % b.capacity
	if b.size < b.capacity {
		b.size++
	}
}

func (b *Buffer[T]) Get(idx uint) T {
	if idx >= b.size {
		panic("index out of range")
	}
	if b.size == b.capacity {
		return b.data[(b.head-1-idx+b.size)%b.capacity]
	}
	return b.data[b.head-1-idx]
}

// Latest returns the most recently pushed element.
func (b *Buffer[T]) Latest() T {
	return b.Get(0)
}

// CopyFifo copies the buffered elements oldest-first into dst and returns the
// filled slice. Pass dst[:0] of a retained slice to avoid allocating on every
// call.
func (b *Buffer[T]) CopyFifo(dst []T) []T {
	for i := b.size; i > 0; i-- {
		dst = append(dst, b.Get(i-1))
	}
	return dst
}
