package models

import "github.com/alovak/cardvalidation/card"

// ISO 8583 response codes (DE39) used by card verification.
const (
	ResponseCodeApproved          = "00"
	ResponseCodeInvalidCardNumber = "14"
	ResponseCodeFormatError       = "30"
	ResponseCodeExpiredCard       = "54"
)

// VerificationRequest carries the fields of a network verification message.
type VerificationRequest struct {
	PAN        string
	ExpiryYYMM string
}

type VerificationResult struct {
	ResponseCode string
	// Network is set only when ResponseCode is approved.
	Network card.PaymentSystemType
}
