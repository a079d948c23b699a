package deso

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codec errors. Always fatal to the decode call.
var (
	ErrMalformedVarint = fmt.Errorf("malformed varint")
	ErrTruncatedInput  = fmt.Errorf("truncated input")
	ErrUnknownVariant  = fmt.Errorf("unknown variant")
	ErrTrailingBytes   = fmt.Errorf("trailing bytes")
)

// Metadata errors. The caller has to fix the input.
var (
	ErrMissingRequiredField = fmt.Errorf("missing required field")
	ErrInvalidFieldEncoding = fmt.Errorf("invalid field encoding")
)

// Bridge errors. ErrSigningDenied is an ordinary outcome of asking a user.
var (
	ErrSigningDenied         = fmt.Errorf("signing denied")
	ErrSigningFailed         = fmt.Errorf("signing failed")
	ErrSigningTimedOut       = fmt.Errorf("signing timed out")
	ErrUnsupportedInHostMode = fmt.Errorf("unsupported in host mode")
	ErrSurfaceClosed         = fmt.Errorf("custody surface closed")
	ErrNotLoggedIn           = fmt.Errorf("not logged in")
)

func missingField(name string) error {
	return errors.Wrapf(ErrMissingRequiredField, "%s is required", name)
}

func invalidField(name string, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidFieldEncoding, "%s: %s", name, fmt.Sprintf(format, args...))
}

// truncatedVarint is returned when the input runs out in the middle of a
// varint. It reports as both ErrMalformedVarint and ErrTruncatedInput.
type truncatedVarint struct {
	have int
}

func (e *truncatedVarint) Error() string {
	return fmt.Sprintf("%s: input exhausted after %d bytes without a terminating byte", ErrMalformedVarint, e.have)
}

func (e *truncatedVarint) Is(target error) bool {
	return target == ErrMalformedVarint || target == ErrTruncatedInput
}
