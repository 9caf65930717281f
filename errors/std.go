package errors

import stdErrors "errors"

// Is and As forward to the standard library so callers importing this package
// by its short name still get the wrapping helpers.
func Is(err, target error) bool { return stdErrors.Is(err, target) }

func As(err error, target any) bool { return stdErrors.As(err, target) }
