package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrEmptyPageKey    = errors.New("page key is required")
	ErrInvalidVersion  = errors.New("version must not be negative")
)

// Structural form errors, reported by [FormValidator] in rule order.
var (
	ErrNoSteps = errors.New("form must have at least one step")

	ErrStepTitleRequired   = errors.New("step title is required")
	ErrStepTitleHyRequired = errors.New("step Armenian title is required")

	ErrStepHasNoFields = errors.New("step must have at least one field")

	ErrInvalidFieldType            = errors.New("invalid field type")
	ErrFieldLabelRequired          = errors.New("field label is required")
	ErrFieldLabelHyRequired        = errors.New("field Armenian label is required")
	ErrFieldPlaceholderRequired    = errors.New("field placeholder is required")
	ErrFieldPlaceholderHyRequired  = errors.New("field Armenian placeholder is required")
	ErrSelectHasNoOptions          = errors.New("select field must have at least one option")
	ErrSelectOptionsLengthMismatch = errors.New("select options and Armenian options differ in length")
	ErrSelectEmptyOption           = errors.New("select option must not be empty")
)

// Submission errors, reported by [SubmissionValidator].
var (
	ErrEmptySubmission       = errors.New("submission data is empty")
	ErrUnknownAnswerKey      = errors.New("answer key does not match the form")
	ErrInvalidAnswerType     = errors.New("answer must be a string")
	ErrRequiredAnswerMissing = errors.New("required answer is missing")
	ErrAnswerNotAnOption     = errors.New("answer is not one of the select options")
	ErrAnswerInvalidDate     = errors.New("answer is not a valid mm/dd/yyyy date")
	ErrAnswerDateOutOfBounds = errors.New("answer date is outside the allowed range")
)
