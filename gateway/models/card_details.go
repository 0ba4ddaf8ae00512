package models

import "github.com/alovak/cardvalidation/card"

// Field names as they appear in request and error payloads.
const (
	FieldOwner  = "Owner"
	FieldNumber = "Number"
	FieldDate   = "Date"
	FieldCvv    = "Cvv"
)

// CardDetails is the payload of a validation request. A nil field was
// absent or null in the JSON body.
type CardDetails struct {
	Owner  *string `json:"Owner"`
	Number *string `json:"Number"`
	Date   *string `json:"Date"`
	Cvv    *string `json:"Cvv"`
}

// Validate checks every field and returns *FieldErrors listing all of the
// failures. A missing or empty field only reports that it is required.
func (d CardDetails) Validate(v *card.Validator) error {
	checks := []struct {
		field string
		value *string
		valid func(string) bool
	}{
		{FieldOwner, d.Owner, v.ValidateOwner},
		{FieldDate, d.Date, v.ValidateIssueDate},
		{FieldCvv, d.Cvv, v.ValidateCvc},
		{FieldNumber, d.Number, v.ValidateNumber},
	}

	errs := &FieldErrors{}
	for _, c := range checks {
		switch {
		case c.value == nil || *c.value == "":
			errs.Add(c.field, RequiredMessage(c.field))
		case !c.valid(*c.value):
			errs.Add(c.field, WrongMessage(c.field))
		}
	}
	if errs.Len() > 0 {
		return errs
	}
	return nil
}

// NumberValue returns the card number or an empty string.
func (d CardDetails) NumberValue() string {
	if d.Number == nil {
		return ""
	}
	return *d.Number
}

// StringPtr is a helper for building CardDetails literals.
func StringPtr(s string) *string {
	return &s
}
