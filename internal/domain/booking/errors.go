package booking

import "errors"

// Rejected transitions leave the machine unchanged and return one of these.
var (
	ErrDoctorUnavailable       = errors.New("doctor is not available")
	ErrDateUnavailable         = errors.New("date is in the past or on a weekend")
	ErrSlotUnavailable         = errors.New("time slot is not available")
	ErrIncompleteSelection     = errors.New("doctor, date and time slot must all be selected")
	ErrAlreadyConfirmed        = errors.New("booking is already confirmed")
	ErrNotConfirmed            = errors.New("booking is not confirmed")
	ErrInvalidConsultationType = errors.New("consultation type must be video, phone or chat")
)
