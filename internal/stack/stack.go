package stack

// Stack is a LIFO over a plain slice. The zero value is ready to use.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop removes the top n items (default 1) and returns the last one removed.
func (s *Stack[T]) Pop(n ...int) (T, bool) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}

	var last T
	var ok bool
	for nn > 0 && len(*s) > 0 {
		l := len(*s) - 1
		last = (*s)[l]
		var zero T
		(*s)[l] = zero
		*s = (*s)[:l]
		ok = true
		nn--
	}
	s.shrink()
	return last, ok
}

// Truncate drops everything above the first n items.
func (s *Stack[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(*s) {
		return
	}
	clear((*s)[n:])
	*s = (*s)[:n]
	s.shrink()
}

// Remove deletes the item at index i, keeping the order of the rest.
func (s *Stack[T]) Remove(i int) {
	if i < 0 || i >= len(*s) {
		return
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	var zero T
	(*s)[:len(*s)+1][len(*s)] = zero
}

func (s *Stack[T]) shrink() {
	if c := cap(*s); c > 20 && c > len(*s)*2 {
		*s = append(Stack[T](nil), *s...)
	}
}

// Peek returns the top item.
func (s Stack[T]) Peek() (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// PeekN returns the top n items, bottom first.
func (s Stack[T]) PeekN(n int) []T {
	if l := len(s); l > n {
		return s[l-n : l]
	}
	return s
}

func (s Stack[T]) Len() int {
	return len(s)
}
