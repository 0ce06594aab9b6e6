package store

import "iter"

// Factory binds store implementations to a query handle. Services receive
// the request's handle and ask the factory for stores scoped to it.
type Factory interface {
	Users(db DBTX) UserStore
	Items(db DBTX) ItemStore
}

// Collect drains seq into a slice, stopping at the first error.
// An empty sequence yields an empty, non-nil slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
