package store

import "github.com/oklog/ulid/v2"

// NewID returns a new lexically sortable record ID.
func NewID() string {
	return ulid.Make().String()
}
