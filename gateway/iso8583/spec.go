package iso8583

import (
	"fmt"
	"io"

	"github.com/moov-io/iso8583"
	"github.com/moov-io/iso8583/encoding"
	"github.com/moov-io/iso8583/field"
	"github.com/moov-io/iso8583/network"
	"github.com/moov-io/iso8583/prefix"
)

// Spec is the subset of ISO 8583:1987 used for card verification.
var Spec = &iso8583.MessageSpec{
	Name: "Card Verification",
	Fields: map[int]field.Field{
		0: field.NewString(&field.Spec{
			Length:      4,
			Description: "Message Type Indicator",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		1: field.NewBitmap(&field.Spec{
			Length:      8,
			Description: "Bitmap",
			Enc:         encoding.Binary,
			Pref:        prefix.Binary.Fixed,
		}),
		2: field.NewString(&field.Spec{
			Length:      19,
			Description: "Primary Account Number",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.LL,
		}),
		3: field.NewString(&field.Spec{
			Length:      6,
			Description: "Processing Code",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		4: field.NewString(&field.Spec{
			Length:      12,
			Description: "Transaction Amount",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		7: field.NewString(&field.Spec{
			Length:      10,
			Description: "Transmission Date & Time",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		11: field.NewString(&field.Spec{
			Length:      6,
			Description: "Systems Trace Audit Number (STAN)",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		14: field.NewString(&field.Spec{
			Length:      4,
			Description: "Expiration Date",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		39: field.NewString(&field.Spec{
			Length:      2,
			Description: "Response Code",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		44: field.NewString(&field.Spec{
			Length:      25,
			Description: "Additional Response Data",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.LL,
		}),
	},
}

const (
	MTIVerificationRequest       = "0100"
	MTIVerificationResponse      = "0110"
	MTINetworkManagementRequest  = "0800"
	MTINetworkManagementResponse = "0810"
)

// VerificationRequest is an account verification (0100) message.
type VerificationRequest struct {
	MTI            *field.String `index:"0"`
	PAN            *field.String `index:"2"`
	ProcessingCode *field.String `index:"3"`
	Amount         *field.String `index:"4"`
	STAN           *field.String `index:"11"`
	ExpirationDate *field.String `index:"14"`
}

// VerificationResponse answers both 0100 and 0800 messages.
type VerificationResponse struct {
	MTI                    *field.String `index:"0"`
	PAN                    *field.String `index:"2"`
	STAN                   *field.String `index:"11"`
	ResponseCode           *field.String `index:"39"`
	AdditionalResponseData *field.String `index:"44"`
}

// ReadMessageLength reads the 2-byte binary length header.
func ReadMessageLength(r io.Reader) (int, error) {
	header := network.NewBinary2BytesHeader()
	n, err := header.ReadFrom(r)
	if err != nil {
		return n, err
	}

	return header.Length(), nil
}

// WriteMessageLength writes the 2-byte binary length header.
func WriteMessageLength(w io.Writer, length int) (int, error) {
	header := network.NewBinary2BytesHeader()
	header.SetLength(length)

	n, err := header.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("writing message header: %w", err)
	}

	return n, nil
}

func value(f *field.String) string {
	if f == nil {
		return ""
	}
	return f.Value()
}

func copyValue(f *field.String) *field.String {
	if f == nil {
		return nil
	}
	return field.NewStringValue(f.Value())
}
