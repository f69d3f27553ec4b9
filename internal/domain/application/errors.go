package application

import "errors"

var (
	ErrNotFound            = errors.New("application not found")
	ErrApplicationConflict = errors.New("application already under review")
	ErrInvalidTransition   = errors.New("application not in a state that can be decided")
	ErrNotApproved         = errors.New("no approved loan application found")
	ErrAmountOutOfRange    = errors.New("loan amount out of range")
	ErrValidationFailed    = errors.New("validation failed")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrRecordTooLarge      = errors.New("record too large")
)
