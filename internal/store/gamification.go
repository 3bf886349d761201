package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rshade/ecoplate/internal/gamification"
)

var _ gamification.BadgeStore = (*FileStore)(nil)

// SeedChallenges adds each challenge whose name is not yet stored and
// returns how many were added.
func (s *FileStore) SeedChallenges(_ context.Context, challenges []gamification.Challenge) (int, error) {
	added := 0
	err := s.mutate(func(d *storeData) error {
		names := make(map[string]struct{}, len(d.Challenges))
		for _, c := range d.Challenges {
			names[c.Name] = struct{}{}
		}
		for _, c := range challenges {
			if _, ok := names[c.Name]; ok {
				continue
			}
			c.ID = s.newID()
			d.Challenges[c.ID] = &c
			names[c.Name] = struct{}{}
			added++
		}
		return nil
	})
	return added, err
}

// Challenge returns a challenge by ID.
func (s *FileStore) Challenge(id string) (gamification.Challenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data.Challenges[id]
	if !ok {
		return gamification.Challenge{}, false
	}
	return *c, true
}

// Challenges returns all challenges ordered by ID, which is creation order.
func (s *FileStore) Challenges() []gamification.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]gamification.Challenge, 0, len(s.data.Challenges))
	for _, c := range s.data.Challenges {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddUserChallenge stores a joined challenge. Joining a missing challenge or
// joining twice is rejected with gamification.ErrChallengeNotFound or
// gamification.ErrAlreadyJoined, wrapped in a *gamification.Rejection.
func (s *FileStore) AddUserChallenge(_ context.Context, uc gamification.UserChallenge) (gamification.UserChallenge, error) {
	if uc.UserID == "" || uc.ChallengeID == "" {
		return gamification.UserChallenge{}, fmt.Errorf("%w: user challenge is incomplete", ErrInvalidRecord)
	}

	uc.ID = s.newID()
	err := s.mutate(func(d *storeData) error {
		if _, ok := d.Challenges[uc.ChallengeID]; !ok {
			return &gamification.Rejection{Reason: gamification.ReasonNotFound, Err: gamification.ErrChallengeNotFound}
		}
		for _, existing := range d.UserChallenges {
			if existing.UserID == uc.UserID && existing.ChallengeID == uc.ChallengeID {
				return &gamification.Rejection{Reason: gamification.ReasonAlreadyJoined, Err: gamification.ErrAlreadyJoined}
			}
		}
		c := copyUserChallenge(uc)
		d.UserChallenges[uc.ID] = &c
		return nil
	})
	if err != nil {
		return gamification.UserChallenge{}, err
	}
	return uc, nil
}

// AdvanceUserChallenge adds delta to userID's progress on challengeID. The
// progress is applied to the record as stored on disk, so concurrent
// invocations add up instead of overwriting each other. Rejections are those
// of gamification.ApplyProgress.
func (s *FileStore) AdvanceUserChallenge(_ context.Context, userID, challengeID string, delta int, now time.Time,
) (gamification.ProgressUpdate, error) {
	var update gamification.ProgressUpdate
	err := s.mutate(func(d *storeData) error {
		ch, ok := d.Challenges[challengeID]
		if !ok {
			_, rejection := gamification.ApplyProgress(nil, gamification.Challenge{}, delta, now)
			return rejection
		}

		var current *gamification.UserChallenge
		for _, uc := range d.UserChallenges {
			if uc.UserID == userID && uc.ChallengeID == challengeID {
				current = uc
				break
			}
		}
		var applyErr error
		if update, applyErr = gamification.ApplyProgress(current, *ch, delta, now); applyErr != nil {
			return applyErr
		}
		c := copyUserChallenge(update.Challenge)
		d.UserChallenges[c.ID] = &c
		return nil
	})
	if err != nil {
		return gamification.ProgressUpdate{}, err
	}
	return update, nil
}

// UserChallenges returns userID's user challenges, most recently started
// first.
func (s *FileStore) UserChallenges(userID string) []gamification.UserChallenge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []gamification.UserChallenge
	for _, uc := range s.data.UserChallenges {
		if uc.UserID == userID {
			out = append(out, copyUserChallenge(*uc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// HasUserBadge reports whether userID has earned badge.
func (s *FileStore) HasUserBadge(_ context.Context, userID string, badge gamification.BadgeType) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return hasBadge(s.data, userID, badge), nil
}

// AddUserBadge stores an earned badge. The uniqueness check and the insert
// happen under the file lock; a duplicate is rejected with
// gamification.ErrAlreadyEarned.
func (s *FileStore) AddUserBadge(_ context.Context, ub gamification.UserBadge) (gamification.UserBadge, error) {
	if ub.UserID == "" || ub.BadgeType == "" {
		return gamification.UserBadge{}, fmt.Errorf("%w: user badge is incomplete", ErrInvalidRecord)
	}

	ub.ID = s.newID()
	err := s.mutate(func(d *storeData) error {
		if hasBadge(d, ub.UserID, ub.BadgeType) {
			return &gamification.Rejection{Reason: gamification.ReasonAlreadyEarned, Err: gamification.ErrAlreadyEarned}
		}
		c := ub
		d.UserBadges[ub.ID] = &c
		return nil
	})
	if err != nil {
		return gamification.UserBadge{}, err
	}
	return ub, nil
}

// UserBadges returns userID's badges, newest first.
func (s *FileStore) UserBadges(userID string) []gamification.UserBadge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []gamification.UserBadge
	for _, ub := range s.data.UserBadges {
		if ub.UserID == userID {
			out = append(out, *ub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EarnedAt.Equal(out[j].EarnedAt) {
			return out[i].EarnedAt.After(out[j].EarnedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func hasBadge(d *storeData, userID string, badge gamification.BadgeType) bool {
	for _, ub := range d.UserBadges {
		if ub.UserID == userID && ub.BadgeType == badge {
			return true
		}
	}
	return false
}

func copyUserChallenge(uc gamification.UserChallenge) gamification.UserChallenge {
	if uc.CompletedAt != nil {
		t := *uc.CompletedAt
		uc.CompletedAt = &t
	}
	return uc
}
