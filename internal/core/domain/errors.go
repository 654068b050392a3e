package domain

import "errors"

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrForbidden          = errors.New("operation requires admin role")
	ErrEmptySelection     = errors.New("ballot has no selected options")
	ErrUnknownOption      = errors.New("selected option does not belong to this poll")
	ErrDuplicateSelection = errors.New("ballot selects the same option more than once")
	ErrTooManySelections  = errors.New("poll accepts a single selected option")
	ErrPollEnded          = errors.New("poll has ended")
	ErrInvalidDefinition  = errors.New("invalid poll definition")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
