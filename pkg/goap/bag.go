package goap

import "reflect"

// Bag is a heterogeneous store holding at most one value per Go type.
//
// Bags serve two roles: the agent-local scratch store, where sensors cache
// perception results for actions to read, and the global resource bag, where
// the host exposes shared services such as the clock or the movement
// controller. Store a pointer when callers need mutable access.
type Bag struct {
	items map[reflect.Type]any
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{items: make(map[reflect.Type]any)}
}

// Len returns the number of stored values.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Clear removes every value.
func (b *Bag) Clear() {
	if b == nil {
		return
	}
	b.items = make(map[reflect.Type]any)
}

// Put stores v, replacing any previous value of the same type.
func Put[T any](b *Bag, v T) {
	if b.items == nil {
		b.items = make(map[reflect.Type]any)
	}
	b.items[reflect.TypeOf((*T)(nil)).Elem()] = v
}

// Get returns the value of type T.
func Get[T any](b *Bag) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	v, ok := b.items[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Has reports whether a value of type T is stored.
func Has[T any](b *Bag) bool {
	_, ok := Get[T](b)
	return ok
}

// Take removes and returns the value of type T.
func Take[T any](b *Bag) (T, bool) {
	v, ok := Get[T](b)
	if ok {
		delete(b.items, reflect.TypeOf((*T)(nil)).Elem())
	}
	return v, ok
}
