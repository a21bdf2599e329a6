package engine

import "errors"

// Error kinds. Concrete failures wrap one of these with fmt.Errorf("%w: …"),
// so callers classify with errors.Is.
var (
	ErrIllegalCall  = errors.New("illegal call")
	ErrIllegalPlay  = errors.New("illegal play")
	ErrInvalidDeal  = errors.New("invalid deal")
	ErrPrecondition = errors.New("precondition violated")
	ErrValidation   = errors.New("validation failed")
)

// PreconditionError is a named precondition failure; it matches ErrPrecondition.
type PreconditionError string

func (e PreconditionError) Error() string { return string(e) }

func (e PreconditionError) Is(target error) bool { return target == ErrPrecondition }

const (
	ErrNotFinished PreconditionError = "auction not finished"
	ErrNoLeader    PreconditionError = "trick has no leader"
	ErrNoDealer    PreconditionError = "auction has no dealer"
)
