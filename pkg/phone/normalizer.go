package phone

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidFormat is returned when a raw input matches none of the
// supported formats. The text is part of the public API contract.
var ErrInvalidFormat = errors.New("Invalid phone format. Use +1 (US) or +967 (Yemen)")

var (
	yemeniSubscriberRegexp = regexp.MustCompile(`^(7|1)\d{8}$`)
	usSubscriberRegexp     = regexp.MustCompile(`^\d{10}$`)
	e164Regexp             = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// Normalize converts a user-entered phone number into canonical E.164 form.
//
// Rules are tried in order: a 9-digit Yemeni subscriber number starting with
// 7 or 1 gets the +967 prefix, a 10-digit number gets the +1 prefix, and an
// input that is already valid E.164 is accepted as-is. Anything else is
// rejected with ErrInvalidFormat.
func Normalize(raw string) (string, error) {
	cleaned := stripNonDigits(raw)

	if yemeniSubscriberRegexp.MatchString(cleaned) {
		return "+967" + cleaned, nil
	}

	if usSubscriberRegexp.MatchString(cleaned) {
		return "+1" + cleaned, nil
	}

	if IsE164(raw) {
		return raw, nil
	}

	return "", ErrInvalidFormat
}

// IsE164 reports whether phone is already in international E.164 format.
func IsE164(phone string) bool {
	return e164Regexp.MatchString(phone)
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
