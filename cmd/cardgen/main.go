package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/alovak/cardvalidation/internal/cardgen"
	"github.com/alovak/cardvalidation/internal/expiry"
	"github.com/alovak/cardvalidation/internal/gatewayclient"
)

var (
	flagNetwork = flag.String("network", "visa", "card network: visa|mastercard|amex")
	flagOwner   = flag.String("owner", "Valid Owner", "cardholder name")
	flagYears   = flag.Int("years", 2, "validity years from now")
	flagGateway = flag.String("gateway", "http://127.0.0.1:9090", "gateway base URL")
	flagPost    = flag.Bool("post", false, "send the card to the gateway instead of printing JSON only")
	flagVerbose = flag.Bool("verbose", false, "print full PAN (otherwise masked)")
)

func main() {
	flag.Parse()
	if *flagYears <= 0 {
		fail("-years must be positive")
	}

	network := must1(parseNetwork(*flagNetwork))
	pan := must1(samplePAN(network))
	cvvLen := 3
	if network == card.AmericanExpress {
		cvvLen = 4
	}
	cvv := must1(cardgen.RandomDigits(cvvLen))

	exp := expiry.AddYears(time.Now(), *flagYears)
	details := models.CardDetails{
		Owner:  models.StringPtr(normalizeOwner(*flagOwner)),
		Number: models.StringPtr(pan),
		Date:   models.StringPtr(exp.CardFace()),
		Cvv:    models.StringPtr(cvv),
	}

	printPAN := cardgen.MaskPAN(pan)
	if *flagVerbose {
		printPAN = pan + "   (WARNING: printing full PAN)"
	}
	fmt.Fprintf(os.Stderr, "NETWORK: %s\nPAN: %s\nEXP: %s (DE14 %s)\n", network, printPAN, exp.CardFace(), exp.YYMM())

	if !*flagPost {
		enc, _ := json.MarshalIndent(details, "", "  ")
		fmt.Println(string(enc))
		return
	}

	cli := gatewayclient.New(strings.TrimRight(*flagGateway, "/"), &http.Client{Timeout: 10 * time.Second})
	result := must1(cli.ValidateCard(context.Background(), details))
	if !result.Valid() {
		enc, _ := json.MarshalIndent(result.Errors, "", "  ")
		fail("gateway rejected card: %s", enc)
	}
	fmt.Printf("Gateway classified card as %s\n", result.Network)
}

func parseNetwork(name string) (card.PaymentSystemType, error) {
	switch strings.ToLower(name) {
	case "visa":
		return card.Visa, nil
	case "mastercard", "mc":
		return card.MasterCard, nil
	case "amex", "americanexpress":
		return card.AmericanExpress, nil
	default:
		return 0, fmt.Errorf("unknown network %q", name)
	}
}

// samplePAN builds a number from the first prefix range and the longest
// length of the network.
func samplePAN(t card.PaymentSystemType) (string, error) {
	for _, n := range card.Networks() {
		if n.Type != t {
			continue
		}
		p := n.Prefixes[0]
		prefix := fmt.Sprintf("%0*d", p.Digits, p.Start)
		return cardgen.Generate(prefix, n.MaxLength)
	}
	return "", fmt.Errorf("no network table entry for %s", t)
}

// normalizeOwner collapses whitespace so the name passes the single-space rule.
func normalizeOwner(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func must1[T any](v T, err error) T {
	if err != nil {
		fail("%v", err)
	}
	return v
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
