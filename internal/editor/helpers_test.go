package editor

import "fmt"

// sequentialIDs returns an IDFunc yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// recorder captures every published collection
type recorder[T any] struct {
	calls [][]T
}

func (r *recorder[T]) update(items []T) {
	r.calls = append(r.calls, items)
}

func (r *recorder[T]) last() []T {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

var denyConfirm = ConfirmFunc(func(string) bool { return false })
