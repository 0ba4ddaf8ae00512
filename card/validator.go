// Package card holds the field rules for payment card input and the
// classification of card numbers by network.
//
// Every rule is a pure function of its input and the injected clock, so a
// Validator can be shared by any number of goroutines.
package card

import (
	"regexp"
	"time"

	"github.com/alovak/cardvalidation/internal/expiry"
)

var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+){0,2}$`)
	cvcPattern   = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Clock returns the current time.
type Clock func() time.Time

// Validator checks card fields. It is immutable once built.
type Validator struct {
	now Clock
}

type Option func(*Validator)

// WithClock replaces the wall clock used by the expiry rule.
func WithClock(c Clock) Option {
	return func(v *Validator) {
		if c != nil {
			v.now = c
		}
	}
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateOwner accepts one to three words of letters separated by single spaces.
func (v *Validator) ValidateOwner(owner string) bool {
	return ownerPattern.MatchString(owner)
}

// ValidateIssueDate accepts MM/YY or MM/YYYY naming a month strictly after
// the current UTC month.
func (v *Validator) ValidateIssueDate(date string) bool {
	m, err := expiry.ParseCardFace(date)
	if err != nil {
		return false
	}
	return v.ValidateExpiry(m)
}

// ValidateExpiry reports whether a parsed expiry month is still accepted.
func (v *Validator) ValidateExpiry(m expiry.Month) bool {
	return m.After(v.now())
}

// ValidateCvc accepts three or four ASCII digits.
func (v *Validator) ValidateCvc(code string) bool {
	return cvcPattern.MatchString(code)
}

// ValidateNumber reports whether number belongs to exactly one known network.
func (v *Validator) ValidateNumber(number string) bool {
	_, ok := classify(number)
	return ok
}

// GetPaymentSystemType classifies a number that passed ValidateNumber.
// Anything else yields an error wrapping ErrUnsupportedNetwork.
func (v *Validator) GetPaymentSystemType(number string) (PaymentSystemType, error) {
	return GetPaymentSystemType(number)
}

var defaultValidator = NewValidator()

func ValidateOwner(owner string) bool { return defaultValidator.ValidateOwner(owner) }

func ValidateIssueDate(date string) bool { return defaultValidator.ValidateIssueDate(date) }

func ValidateCvc(code string) bool { return defaultValidator.ValidateCvc(code) }

func ValidateNumber(number string) bool { return defaultValidator.ValidateNumber(number) }
