package user

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/apperror"
)

// PhoneRules maps a country calling code such as "+91" to the number of
// digits the local part of a phone number must have.
type PhoneRules map[string]int

// DefaultPhoneRules returns the built-in country code table.
func DefaultPhoneRules() PhoneRules {
	return PhoneRules{
		"+91": 10, // India
		"+1":  10, // USA
		"+44": 10, // UK
		"+61": 9,  // Australia
		"+81": 10, // Japan
		"+49": 11, // Germany
	}
}

type phoneRulesFile struct {
	Lengths map[string]int `toml:"lengths"`
}

// LoadPhoneRules reads a rule table from a TOML file of the form
//
//	[lengths]
//	"+91" = 10
//
// An empty path returns the default table.
func LoadPhoneRules(path string) (PhoneRules, error) {
	if path == "" {
		return DefaultPhoneRules(), nil
	}

	var f phoneRulesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode phone rules %s: %w", path, err)
	}
	if len(f.Lengths) == 0 {
		return nil, fmt.Errorf("phone rules %s: no [lengths] entries", path)
	}

	rules := make(PhoneRules, len(f.Lengths))
	for code, n := range f.Lengths {
		if n <= 0 {
			return nil, fmt.Errorf("phone rules %s: invalid length %d for %s", path, n, code)
		}
		rules[strings.TrimSpace(code)] = n
	}
	return rules, nil
}

// Validate checks that phone is made only of digits and has the length
// required for countryCode. It returns the full number to store.
func (r PhoneRules) Validate(countryCode, phone string) (string, error) {
	if !isDigits(phone) {
		return "", wrapPhone("phone number should contain only numbers")
	}

	want, ok := r[countryCode]
	if !ok {
		return "", wrapPhone(fmt.Sprintf("unsupported country code %q", countryCode))
	}
	if len(phone) != want {
		return "", wrapPhone(fmt.Sprintf("phone number should be %d digits long for %s", want, countryCode))
	}

	return countryCode + phone, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func wrapPhone(message string) error {
	return apperror.Wrap(ErrInvalidPhone, ErrInvalidPhone.Code, message)
}
