package results

import "cmp"

// Key is an ordered value that may instead be pinned above every value.
// The zero Key is the exact zero value of T.
type Key[T cmp.Ordered] struct {
	value T
	max   bool
}

// Exact returns a key holding v.
func Exact[T cmp.Ordered](v T) Key[T] { return Key[T]{value: v} }

// Max returns the key that orders after every exact key.
func Max[T cmp.Ordered]() Key[T] { return Key[T]{max: true} }

// Value returns the held value and false for the Max key.
func (k Key[T]) Value() (T, bool) { return k.value, !k.max }

func (k Key[T]) IsMax() bool { return k.max }

// Compare returns -1, 0 or 1. Two Max keys are equal.
func (k Key[T]) Compare(o Key[T]) int {
	switch {
	case k.max && o.max:
		return 0
	case k.max:
		return 1
	case o.max:
		return -1
	}
	return cmp.Compare(k.value, o.value)
}
