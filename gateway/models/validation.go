package models

import (
	"errors"
	"strings"
)

// FieldErrors is the rejection of a card request: messages grouped by
// request field, with fields kept in the order they were checked.
type FieldErrors struct {
	fields   []string
	messages map[string][]string
}

// Add records message against field.
func (e *FieldErrors) Add(field, message string) {
	if e.messages == nil {
		e.messages = make(map[string][]string)
	}
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], message)
}

func (e *FieldErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.fields)
}

func (e *FieldErrors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.fields...)
}

func (e *FieldErrors) Messages(field string) []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.messages[field]...)
}

// Map returns a copy in the shape sent to HTTP clients.
func (e *FieldErrors) Map() map[string][]string {
	out := make(map[string][]string, e.Len())
	for _, f := range e.Fields() {
		out[f] = e.Messages(f)
	}
	return out
}

func (e *FieldErrors) Error() string {
	if e.Len() == 0 {
		return "card rejected"
	}
	var sb strings.Builder
	sb.WriteString("card rejected:")
	for _, f := range e.fields {
		for _, m := range e.messages[f] {
			sb.WriteString(" ")
			sb.WriteString(f)
			sb.WriteString("=")
			sb.WriteString(m)
			sb.WriteString(";")
		}
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// AsFieldErrors returns the FieldErrors wrapped in err, or nil.
func AsFieldErrors(err error) *FieldErrors {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// RequiredMessage is reported for an absent or empty field.
func RequiredMessage(field string) string {
	return field + " is required"
}

// WrongMessage is reported for a field that is present but malformed.
func WrongMessage(field string) string {
	return "Wrong " + strings.ToLower(field)
}
