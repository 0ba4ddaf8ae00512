package card

import (
	"encoding/json"
	"fmt"
)

// PaymentSystemType identifies the card network a number belongs to.
type PaymentSystemType int

const (
	Visa PaymentSystemType = iota + 1
	MasterCard
	AmericanExpress
)

var paymentSystemNames = map[PaymentSystemType]string{
	Visa:            "Visa",
	MasterCard:      "MasterCard",
	AmericanExpress: "AmericanExpress",
}

func (t PaymentSystemType) String() string {
	if name, ok := paymentSystemNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PaymentSystemType(%d)", int(t))
}

// ParsePaymentSystemType is the inverse of String.
func ParsePaymentSystemType(name string) (PaymentSystemType, error) {
	for t, n := range paymentSystemNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown payment system %q", name)
}

// MarshalJSON renders the network name, e.g. "Visa".
func (t PaymentSystemType) MarshalJSON() ([]byte, error) {
	name, ok := paymentSystemNames[t]
	if !ok {
		return nil, fmt.Errorf("marshal payment system: %w", ErrUnsupportedNetwork)
	}
	return json.Marshal(name)
}

func (t *PaymentSystemType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParsePaymentSystemType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
