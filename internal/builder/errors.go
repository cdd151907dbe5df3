package builder

import "errors"

var (
	ErrStepNotFound      = errors.New("step not found")
	ErrFieldNotFound     = errors.New("field not found")
	ErrNotSelectField    = errors.New("field is not a select")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrNoSaver           = errors.New("no schema saver configured")
)
