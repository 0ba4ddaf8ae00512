package card

import (
	"errors"
	"fmt"

	"github.com/alovak/cardvalidation/internal/cardgen"
)

// ErrUnsupportedNetwork is returned when a number matches none of the known
// networks.
var ErrUnsupportedNetwork = errors.New("unsupported payment network")

// PrefixRange is an inclusive range over the first Digits digits of a number.
type PrefixRange struct {
	Digits int
	Start  int
	End    int
}

// Network describes the shape of numbers issued by one payment system.
type Network struct {
	Type      PaymentSystemType
	MinLength int
	MaxLength int
	Prefixes  []PrefixRange
}

// The families are disjoint: no prefix range overlaps another network's.
var networks = [...]Network{
	{
		Type:      Visa,
		MinLength: 13,
		MaxLength: 16,
		Prefixes:  []PrefixRange{{Digits: 1, Start: 4, End: 4}},
	},
	{
		Type:      MasterCard,
		MinLength: 16,
		MaxLength: 16,
		Prefixes: []PrefixRange{
			{Digits: 2, Start: 51, End: 55},
			{Digits: 4, Start: 2221, End: 2720},
		},
	},
	{
		Type:      AmericanExpress,
		MinLength: 15,
		MaxLength: 15,
		Prefixes: []PrefixRange{
			{Digits: 2, Start: 34, End: 34},
			{Digits: 2, Start: 37, End: 37},
		},
	},
}

// Networks returns a copy of the network table.
func Networks() []Network {
	out := make([]Network, len(networks))
	for i, n := range networks {
		n.Prefixes = append([]PrefixRange(nil), n.Prefixes...)
		out[i] = n
	}
	return out
}

// GetPaymentSystemType classifies number by prefix and length.
func GetPaymentSystemType(number string) (PaymentSystemType, error) {
	t, ok := classify(number)
	if !ok {
		return 0, fmt.Errorf("classify %s: %w", cardgen.MaskPAN(number), ErrUnsupportedNetwork)
	}
	return t, nil
}

func classify(number string) (PaymentSystemType, bool) {
	if number == "" || !cardgen.IsDigits(number) {
		return 0, false
	}
	for i := range networks {
		if networks[i].matches(number) {
			return networks[i].Type, true
		}
	}
	return 0, false
}

func (n *Network) matches(number string) bool {
	if len(number) < n.MinLength || len(number) > n.MaxLength {
		return false
	}
	for _, p := range n.Prefixes {
		if p.contains(number) {
			return true
		}
	}
	return false
}

func (p PrefixRange) contains(number string) bool {
	if len(number) < p.Digits {
		return false
	}
	v := 0
	for i := 0; i < p.Digits; i++ {
		v = v*10 + int(number[i]-'0')
	}
	return v >= p.Start && v <= p.End
}
