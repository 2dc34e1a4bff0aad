package errors

// Validation reports malformed or missing required input.
func Validation(message string) error {
	return &Exception{Kind: KindValidation, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) error {
	return &Exception{Kind: KindConflict, Message: message}
}

// Reference reports a dangling foreign reference.
func Reference(message string) error {
	return &Exception{Kind: KindReference, Message: message}
}

// NotFound reports an absent entity.
func NotFound(message string) error {
	return &Exception{Kind: KindNotFound, Message: message}
}

// Authorization reports a failed role or ownership check.
func Authorization(message string) error {
	return &Exception{Kind: KindAuthorization, Message: message}
}
