package wizard

import "errors"

var (
	ErrFormNotFound     = errors.New("form not found")
	ErrNotReady         = errors.New("wizard is not accepting input")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrFieldOutOfRange  = errors.New("field index out of range")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrWrongFieldType   = errors.New("operation does not match field type")
	ErrInvalidDate      = errors.New("date must be mm/dd/yyyy")
	ErrDateOutOfRange   = errors.New("date is outside the allowed range")
	ErrStepInvalid      = errors.New("step has invalid fields")
	ErrSubmissionFailed = errors.New("submission failed")
)
