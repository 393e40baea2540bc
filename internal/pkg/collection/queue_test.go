package collection

import (
	"slices"
	"testing"
)

func drain[T any](q *Queue[T]) []T {
	var got []T
	for v := range q.Iter {
		got = append(got, v)
	}
	return got
}

func TestQueue_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []int
		want  []int
	}{
		{
			name:  "empty queue",
			items: nil,
			want:  nil,
		},
		{
			name:  "single element",
			items: []int{1},
			want:  []int{1},
		},
		{
			name:  "keeps insertion order",
			items: []int{3, 1, 2},
			want:  []int{3, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := NewQueue[int]()
			for _, v := range tt.items {
				q.Push(v)
			}

			if got := drain(q); !slices.Equal(got, tt.want) {
				t.Errorf("yielded %v, want %v", got, tt.want)
			}
			if got := drain(q); len(got) != 0 {
				t.Errorf("queue should be empty after draining, got %v", got)
			}
		})
	}
}

func TestQueue_Iter(t *testing.T) {
	t.Parallel()

	q := NewQueue(1, 2, 3)

	var got []int
	for v := range q.Iter {
		got = append(got, v)
		if v < 3 {
			q.Push(v + 10)
		}
	}

	if want := []int{1, 2, 3, 11, 12}; !slices.Equal(got, want) {
		t.Errorf("Iter yielded %v, want %v", got, want)
	}
}

func TestQueue_IterBreak(t *testing.T) {
	t.Parallel()

	q := NewQueue("a", "b", "c")
	for v := range q.Iter {
		if v == "a" {
			break
		}
	}

	if got, want := drain(q), []string{"b", "c"}; !slices.Equal(got, want) {
		t.Errorf("remaining = %v, want %v", got, want)
	}
}
