package gamification

import "errors"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Callers receive them wrapped in a *Rejection carrying a
// machine-readable Reason and compare with errors.Is.
var (
	ErrUnknownAchievement = constError("unknown achievement type")
	ErrConditionNotMet    = constError("achievement condition not met")
	ErrAlreadyEarned      = constError("achievement already earned")
	ErrNotInProgress      = constError("challenge not found or not in progress")
	ErrAlreadyJoined      = constError("challenge already joined")
	ErrChallengeNotFound  = constError("challenge not found")
	ErrNegativeProgress   = constError("progress delta must not be negative")
)

// Reason is a machine-readable rejection reason.
type Reason string

// Rejection reasons.
const (
	ReasonNotFound        Reason = "not_found"
	ReasonAlreadyEarned   Reason = "already_earned"
	ReasonAlreadyJoined   Reason = "already_joined"
	ReasonConditionNotMet Reason = "condition_not_met"
	ReasonUnknownType     Reason = "unknown_type"
	ReasonInvalid         Reason = "invalid"
)

// Rejection reports an operation refused because it would violate an
// invariant. It is never fatal; callers translate it for the user.
type Rejection struct {
	Reason Reason
	Err    error
}

func (r *Rejection) Error() string {
	return string(r.Reason) + ": " + r.Err.Error()
}

func (r *Rejection) Unwrap() error { return r.Err }

func reject(reason Reason, err error) error {
	return &Rejection{Reason: reason, Err: err}
}

// ReasonOf returns the rejection reason carried by err, if any.
func ReasonOf(err error) (Reason, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}
