// Package collection provides utility data structures.
package collection

import (
	"container/list"
)

// Queue is a FIFO queue.
type Queue[T any] struct {
	data list.List
}

func NewQueue[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, v := range items {
		q.Push(v)
	}
	return q
}

func (q *Queue[T]) Push(v T) {
	q.data.PushBack(v)
}

// Iter drains the queue front to back. Elements pushed while iterating are
// yielded too.
func (q *Queue[T]) Iter(yield func(T) bool) {
	for e := q.data.Front(); e != nil; e = q.data.Front() {
		q.data.Remove(e)

		if !yield(e.Value.(T)) {
			break
		}
	}
}
