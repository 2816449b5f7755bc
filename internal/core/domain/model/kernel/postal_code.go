package kernel

import (
	"fmt"
	"regexp"

	"fulfillment/internal/pkg/errs"
)

// SentinelPostalCodeValue is the fixed invalid placeholder signaling that a
// postal code could not be extracted from address input. Callers must treat
// it as unusable and block downstream rate requests.
const SentinelPostalCodeValue = "00000"

var postalCodePattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// ErrPostalCodeIsNotConstructed indicates that a PostalCode was not properly initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value PostalCode.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"PostalCode must be created via NewPostalCode or SentinelPostalCode")

// PostalCode is a value object representing a US ZIP code, either in the
// five-digit form ("49503") or the ZIP+4 form ("49503-1234").
//
// The zero value of PostalCode is invalid and must be constructed using
// NewPostalCode or SentinelPostalCode. The sentinel value "00000" is a valid
// PostalCode instance but reports itself as unusable, allowing callers to
// carry "no parseable destination" through the workflow without resorting to
// empty strings or nil pointers.
//
// PostalCode is immutable and thread-safe, making it suitable for concurrent use.
//
// Example usage:
//
//	code, err := kernel.NewPostalCode("49503")
//	if err != nil {
//	    // handle error
//	}
//	if !code.IsUsable() {
//	    // refuse to build a rate request
//	}
type PostalCode struct {
	value string
}

// NewPostalCode parses a postal code from its string representation.
// It accepts the five-digit form and the ZIP+4 form. Returns an error if the
// string does not match either format.
//
// Example:
//
//	code, err := kernel.NewPostalCode("49503-1234")
//	if err != nil {
//	    return fmt.Errorf("invalid origin ZIP: %w", err)
//	}
func NewPostalCode(s string) (PostalCode, error) {
	if s == "" {
		return PostalCode{}, errs.NewValueIsRequiredError("postal code")
	}
	if !postalCodePattern.MatchString(s) {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
			"postal code", fmt.Errorf("%q is not a 5-digit or ZIP+4 code", s))
	}
	return PostalCode{value: s}, nil
}

// SentinelPostalCode returns the fixed invalid placeholder "00000".
// It is used by address parsing when no postal code can be extracted,
// so that callers always receive a constructed value.
func SentinelPostalCode() PostalCode {
	return PostalCode{value: SentinelPostalCodeValue}
}

// String returns the postal code as entered, including the +4 suffix when present.
// For a zero value PostalCode, this returns the empty string.
func (p PostalCode) String() string {
	return p.value
}

// Zip5 returns the leading five digits of the postal code.
// Carrier rate APIs generally key on the five-digit form.
func (p PostalCode) Zip5() string {
	if len(p.value) < 5 {
		return p.value
	}
	return p.value[:5]
}

// IsSentinel reports whether the postal code is the "00000" placeholder.
func (p PostalCode) IsSentinel() bool {
	return p.value == SentinelPostalCodeValue
}

// IsUsable reports whether the postal code may be used to build a rate request.
// The zero value and the sentinel are both unusable.
func (p PostalCode) IsUsable() bool {
	return p.value != "" && !p.IsSentinel()
}

// IsEqual compares two postal codes for equality.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.value == other.value
}

// Validate checks if the PostalCode is properly constructed.
// Returns ErrPostalCodeIsNotConstructed if the PostalCode is a zero value.
// The sentinel value is considered constructed; use IsUsable to reject it.
func (p PostalCode) Validate() error {
	if p.value == "" {
		return ErrPostalCodeIsNotConstructed
	}
	return nil
}
