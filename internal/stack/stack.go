package stack

// Stack is a LIFO work stack. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds elements in order with the last element at the top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// PushReverse adds elements so that items[0] ends on top and is popped first.
func (s *Stack[T]) PushReverse(items ...T) {
	for i := len(items) - 1; i >= 0; i-- {
		s.items = append(s.items, items[i])
	}
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	var zero T
	s.items[index] = zero // release references held by the backing array
	s.items = s.items[:index]
	return item, true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}
