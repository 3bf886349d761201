package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for quantity normalisation. Identifier resolution never
// fails; only malformed quantities are rejected.
var (
	// ErrInvalidUnit indicates a unit that is not valid for the activity kind.
	ErrInvalidUnit = constError("invalid unit")

	// ErrNegativeValue indicates a negative quantity.
	ErrNegativeValue = constError("negative quantity")

	// ErrCalculationOverflow indicates an Inf or NaN input or result.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnrecognizedKind indicates an activity kind outside meal/energy/transport/fuel.
	ErrUnrecognizedKind = constError("unrecognized activity kind")
)
