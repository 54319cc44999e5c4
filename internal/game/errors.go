package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction  = errors.New("invalid_action")
	ErrNotYourTurn    = errors.New("not_your_turn")
	ErrAmountTooSmall = errors.New("amount_too_small")
	ErrSeatNotInHand  = errors.New("seat_not_in_hand")
	ErrNoHandRunning  = errors.New("no_hand_running")
	ErrInvariant      = errors.New("internal_invariant_violation")
)

// ProtocolError is a rejected player action. The hand state is unchanged
// when one is returned.
type ProtocolError struct {
	Seat int
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("seat %d: %v", e.Seat, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func rejectf(seat int, err error) error {
	return &ProtocolError{Seat: seat, Err: err}
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// Code returns the wire code for an error produced by this package.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotYourTurn):
		return ErrNotYourTurn.Error()
	case errors.Is(err, ErrAmountTooSmall):
		return ErrAmountTooSmall.Error()
	case errors.Is(err, ErrSeatNotInHand):
		return ErrSeatNotInHand.Error()
	case errors.Is(err, ErrNoHandRunning):
		return ErrNoHandRunning.Error()
	case errors.Is(err, ErrInvalidAction):
		return ErrInvalidAction.Error()
	case errors.Is(err, ErrInvariant):
		return ErrInvariant.Error()
	default:
		return "unknown_error"
	}
}

// IsProtocolError reports whether err is a rejected player action rather
// than a fault of the hand itself.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
