// Package validate holds the field predicates applied to passenger and
// catalog input before anything reaches the booking engine.
package validate

import (
	"fmt"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

const (
	MaxNameLen     = 20
	MaxPassportLen = 10
	MaxIDLen       = 10
	MaxPhoneLen    = 15
)

// Name accepts any non-empty text up to MaxNameLen bytes.
func Name(s string) bool {
	return s != "" && len(s) <= MaxNameLen
}

// Passport accepts 1..MaxPassportLen ASCII letters or digits.
func Passport(s string) bool {
	return s != "" && len(s) <= MaxPassportLen && all(s, isAlnum)
}

// ID accepts a government id of 1..MaxIDLen digits.
func ID(s string) bool {
	return s != "" && len(s) <= MaxIDLen && all(s, isDigit)
}

// Phone accepts 1..MaxPhoneLen digits.
func Phone(s string) bool {
	return s != "" && len(s) <= MaxPhoneLen && all(s, isDigit)
}

// Draft checks every identity field of a passenger draft and reports the
// first one that fails.
func Draft(d models.PassengerDraft) error {
	switch {
	case !Name(d.Name):
		return fmt.Errorf("%w: name must be 1-%d characters", models.ErrInvalidPassenger, MaxNameLen)
	case !Passport(d.Passport):
		return fmt.Errorf("%w: passport must be 1-%d letters or digits", models.ErrInvalidPassenger, MaxPassportLen)
	case !ID(d.ID):
		return fmt.Errorf("%w: id must be 1-%d digits", models.ErrInvalidPassenger, MaxIDLen)
	case !Phone(d.Contact):
		return fmt.Errorf("%w: phone must be 1-%d digits", models.ErrInvalidPassenger, MaxPhoneLen)
	}
	return nil
}

func all(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
