// Package cardgen builds sample card numbers and masks numbers for logging.
package cardgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

var errPrefix = errors.New("prefix must be a non-empty digit string")

// Generate returns a random number of the given length starting with prefix.
// The final digit is a Luhn check digit so samples pass external checkers.
func Generate(prefix string, length int) (string, error) {
	if prefix == "" || !IsDigits(prefix) {
		return "", errPrefix
	}
	if length <= len(prefix) {
		return "", fmt.Errorf("prefix %s leaves no room in %d digits", prefix, length)
	}

	middle, err := RandomDigits(length - len(prefix) - 1)
	if err != nil {
		return "", fmt.Errorf("drawing digits: %w", err)
	}
	body := []byte(prefix + middle)
	return string(append(body, checkDigit(body))), nil
}

// RandomDigits returns count uniformly distributed decimal digits.
func RandomDigits(count int) (string, error) {
	out := make([]byte, 0, count)
	var b [1]byte
	for len(out) < count {
		if _, err := rand.Read(b[:]); err != nil {
			return "", err
		}
		// 250..255 would skew the distribution toward 0..5
		if b[0] >= 250 {
			continue
		}
		out = append(out, '0'+b[0]%10)
	}
	return string(out), nil
}

func checkDigit(body []byte) byte {
	sum := 0
	for i := range body {
		d := int(body[len(body)-1-i] - '0')
		if i%2 == 0 {
			d = d * 2 % 9
			if d == 0 && body[len(body)-1-i] == '9' {
				d = 9
			}
		}
		sum += d
	}
	return '0' + byte((10-sum%10)%10)
}

func IsDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// MaskPAN hides everything but the first six and last four digits. Inputs
// too short to carry a BIN keep only their last four, and four or fewer
// digits are fully starred.
func MaskPAN(pan string) string {
	digits := strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(strings.TrimSpace(pan))
	n := len(digits)
	switch {
	case n <= 4:
		return strings.Repeat("*", n)
	case n < 10:
		return strings.Repeat("*", n-4) + digits[n-4:]
	default:
		return digits[:6] + strings.Repeat("*", n-10) + digits[n-4:]
	}
}
