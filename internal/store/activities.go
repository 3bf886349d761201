package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/rshade/ecoplate/internal/greenops"
)

// PutUser creates or replaces a user profile.
func (s *FileStore) PutUser(_ context.Context, u User) (User, error) {
	if u.ID == "" {
		return User{}, fmt.Errorf("%w: user ID cannot be empty", ErrInvalidRecord)
	}
	err := s.mutate(func(d *storeData) error {
		c := u
		d.Users[u.ID] = &c
		return nil
	})
	return u, err
}

// User returns a user profile by ID.
func (s *FileStore) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.data.Users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// AddActivity stores a new activity and returns it with its assigned ID.
func (s *FileStore) AddActivity(_ context.Context, a Activity) (Activity, error) {
	if a.UserID == "" {
		return Activity{}, fmt.Errorf("%w: activity user ID cannot be empty", ErrInvalidRecord)
	}
	if a.Kind == greenops.KindUnrecognized {
		return Activity{}, fmt.Errorf("%w: unrecognized activity kind", ErrInvalidRecord)
	}

	a.ID = s.newID()
	err := s.mutate(func(d *storeData) error {
		c := a
		d.Activities[a.ID] = &c
		return nil
	})
	if err != nil {
		return Activity{}, err
	}
	return a, nil
}

// AddActivities stores several activities in one write and returns them with
// their assigned IDs, in input order.
func (s *FileStore) AddActivities(_ context.Context, batch []Activity) ([]Activity, error) {
	out := make([]Activity, len(batch))
	for i, a := range batch {
		if a.UserID == "" || a.Kind == greenops.KindUnrecognized {
			return nil, fmt.Errorf("%w: activity %d is incomplete", ErrInvalidRecord, i)
		}
		a.ID = s.newID()
		out[i] = a
	}

	err := s.mutate(func(d *storeData) error {
		for i := range out {
			c := out[i]
			d.Activities[c.ID] = &c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Activity returns an activity by ID.
func (s *FileStore) Activity(id string) (Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data.Activities[id]
	if !ok {
		return Activity{}, false
	}
	return *a, true
}

// Activities returns the activities matching f, newest first. Ties are
// broken by ID.
func (s *FileStore) Activities(f ActivityFilter) []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Activity
	for _, a := range s.data.Activities {
		if f.matches(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LoggedAt.Equal(out[j].LoggedAt) {
			return out[i].LoggedAt.After(out[j].LoggedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// CountActivities returns the number of activities matching f.
func (s *FileStore) CountActivities(f ActivityFilter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.data.Activities {
		if f.matches(a) {
			n++
		}
	}
	return n
}
