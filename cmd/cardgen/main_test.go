package main

import (
	"testing"

	"github.com/alovak/cardvalidation/card"
)

func TestNormalizeOwner(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"   ", ""},
		{"john  doe", "john doe"},
		{"  Alice\tSmith  ", "Alice Smith"},
	}
	for _, c := range cases {
		if got := normalizeOwner(c.in); got != c.out {
			t.Fatalf("normalizeOwner(%q) = %q want %q", c.in, got, c.out)
		}
	}
}

func TestSamplePAN(t *testing.T) {
	for _, name := range []string{"visa", "MasterCard", "amex"} {
		network, err := parseNetwork(name)
		if err != nil {
			t.Fatalf("parseNetwork(%q): %v", name, err)
		}
		pan, err := samplePAN(network)
		if err != nil {
			t.Fatalf("samplePAN(%s): %v", network, err)
		}
		got, err := card.GetPaymentSystemType(pan)
		if err != nil || got != network {
			t.Fatalf("sample %s classified as %v err=%v", pan, got, err)
		}
	}

	if _, err := parseNetwork("discover"); err == nil {
		t.Fatalf("expected error for unsupported network")
	}
}
