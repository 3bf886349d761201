package store

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// AddSwaps stores swaps recommended for an existing activity and returns
// them with assigned IDs, in input order. A swap whose activity already has
// a swap to the same recommended food is not stored again; the existing
// record is returned in its place.
func (s *FileStore) AddSwaps(_ context.Context, swaps []Swap) ([]Swap, error) {
	out := make([]Swap, len(swaps))
	for i, sw := range swaps {
		if sw.UserID == "" || sw.ActivityID == "" {
			return nil, fmt.Errorf("%w: swap %d is missing its user or activity", ErrInvalidRecord, i)
		}
		out[i] = sw
	}

	err := s.mutate(func(d *storeData) error {
		for i := range out {
			if _, ok := d.Activities[out[i].ActivityID]; !ok {
				return fmt.Errorf("activity %s: %w", out[i].ActivityID, ErrNotFound)
			}
		}

		stored := make(map[swapKey]*Swap, len(d.Swaps))
		for _, sw := range d.Swaps {
			stored[keyOf(*sw)] = sw
		}
		for i := range out {
			if existing, ok := stored[keyOf(out[i])]; ok {
				out[i] = copySwap(*existing)
				continue
			}
			out[i].ID = s.newID()
			c := copySwap(out[i])
			d.Swaps[c.ID] = &c
			stored[keyOf(c)] = &c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// swapKey identifies a recommendation for one logged meal.
type swapKey struct {
	activityID string
	food       string
}

func keyOf(sw Swap) swapKey {
	return swapKey{activityID: sw.ActivityID, food: sw.RecommendedFood}
}

// Swap returns a swap by ID.
func (s *FileStore) Swap(id string) (Swap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sw, ok := s.data.Swaps[id]
	if !ok {
		return Swap{}, false
	}
	return copySwap(*sw), true
}

// Swaps returns userID's swaps created at or after since, newest first.
// A zero since returns all of them.
func (s *FileStore) Swaps(userID string, since time.Time) []Swap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Swap
	for _, sw := range s.data.Swaps {
		if sw.UserID != userID || (!since.IsZero() && sw.CreatedAt.Before(since)) {
			continue
		}
		out = append(out, copySwap(*sw))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// SetSwapDecision records whether userID accepted the swap and returns the
// updated swap with the decision it replaced, nil when it was undecided.
// Deciding again overwrites the previous decision.
func (s *FileStore) SetSwapDecision(_ context.Context, userID, swapID string, accepted bool,
) (Swap, *bool, error) {
	var (
		updated  Swap
		previous *bool
	)
	err := s.mutate(func(d *storeData) error {
		sw, ok := d.Swaps[swapID]
		if !ok || sw.UserID != userID {
			return fmt.Errorf("swap %s: %w", swapID, ErrNotFound)
		}
		if sw.Accepted != nil {
			prev := *sw.Accepted
			previous = &prev
		}
		decision := accepted
		sw.Accepted = &decision
		updated = copySwap(*sw)
		return nil
	})
	if err != nil {
		return Swap{}, nil, err
	}
	return updated, previous, nil
}

// AcceptedReduction sums the reductions of userID's accepted swaps.
func (s *FileStore) AcceptedReduction(userID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, sw := range s.data.Swaps {
		if sw.UserID == userID && sw.IsAccepted() {
			total += sw.Reduction
		}
	}
	return total
}

func copySwap(sw Swap) Swap {
	if sw.Accepted != nil {
		v := *sw.Accepted
		sw.Accepted = &v
	}
	return sw
}
