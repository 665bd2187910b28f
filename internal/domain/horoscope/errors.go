package horoscope

import "errors"

var (
	ErrSignRequired    = errors.New("sign is required")
	ErrUnknownSign     = errors.New("unknown zodiac sign")
	ErrUnknownDay      = errors.New("day must be today, tomorrow or yesterday")
	ErrUnknownLanguage = errors.New("unsupported language")

	ErrGeneratorNotConfigured = errors.New("generator credential is not configured")
	ErrGeneratorFailed        = errors.New("generator request failed")
)

// IsValidation reports whether err is a caller input error (HTTP 400 class).
func IsValidation(err error) bool {
	return errors.Is(err, ErrSignRequired) ||
		errors.Is(err, ErrUnknownSign) ||
		errors.Is(err, ErrUnknownDay) ||
		errors.Is(err, ErrUnknownLanguage)
}
