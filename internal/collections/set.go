package collections

import "fmt"

// OrderedSet is a set that remembers insertion order
type OrderedSet[T comparable] struct {
	index   map[T]int
	members []T
}

// NewOrderedSet creates a set holding vs, duplicates dropped
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: map[T]int{}}
	s.Add(vs...)
	return s
}

// Add appends values not already present
func (s *OrderedSet[T]) Add(vs ...T) {
	for _, v := range vs {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.members)
		s.members = append(s.members, v)
	}
}

// Has checks if the set contains the given value
func (s *OrderedSet[T]) Has(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Len returns the number of members
func (s *OrderedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Members returns the values in insertion order
func (s *OrderedSet[T]) Members() []T {
	if s == nil {
		return nil
	}
	return s.members
}

func (s *OrderedSet[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}
