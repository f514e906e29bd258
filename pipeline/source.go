package pipeline

// SliceSource adapts an in-memory slice to the Source contract.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// NewSliceSource snapshots the input so outside mutation cannot race the run
func NewSliceSource[T any](items []T) *SliceSource[T] {
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	return &SliceSource[T]{items: snapshot}
}

func (s *SliceSource[T]) Next() (T, bool, error) {
	if s.pos == len(s.items) {
		var zero T
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}
