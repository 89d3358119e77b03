package bookingflow

import "testing"

func TestCardValidation(t *testing.T) {
	valid := CardInput{Number: "4111 1111 1111 1234", HolderName: "Pat Jones", Expiry: "12/27", CVV: "123"}

	cases := []struct {
		name    string
		mutate  func(*CardInput)
		wantMsg string
	}{
		{"valid", func(c *CardInput) {}, ""},
		{"15 digit number", func(c *CardInput) { c.Number = "411111111111123" }, "card number must be 16 digits"},
		{"letters in number", func(c *CardInput) { c.Number = "4111 1111 1111 12ab" }, "card number must be 16 digits"},
		{"blank name", func(c *CardInput) { c.HolderName = "   " }, "cardholder name must be at least 3 characters"},
		{"two char name", func(c *CardInput) { c.HolderName = "Pa" }, "cardholder name must be at least 3 characters"},
		{"incomplete expiry", func(c *CardInput) { c.Expiry = "12/2" }, "expiry must be in MM/YY format"},
		{"month 13", func(c *CardInput) { c.Expiry = "13/27" }, "expiry must be in MM/YY format"},
		{"two digit cvv", func(c *CardInput) { c.CVV = "12" }, "cvv must be 3 digits"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := valid
			tc.mutate(&card)
			err := card.Validate()
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantMsg {
				t.Fatalf("expected %q, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestMasked(t *testing.T) {
	card := CardInput{Number: "4111 1111 1111 1234"}
	if got := card.Masked(); got != "**** **** **** 1234" {
		t.Fatalf("unexpected mask: %q", got)
	}
	if got := (CardInput{Number: "12"}).Masked(); got != "" {
		t.Fatalf("short input should mask to empty, got %q", got)
	}
}

func TestFormatCardNumber(t *testing.T) {
	if got := FormatCardNumber("4111111111111234"); got != "4111 1111 1111 1234" {
		t.Fatalf("unexpected grouping: %q", got)
	}
	if got := FormatCardNumber("4111 1111"); got != "4111 1111" {
		t.Fatalf("unexpected grouping: %q", got)
	}
	if got := FormatCardNumber("4111-1111-1111-12ab"); got != "4111 1111 1111 12" {
		t.Fatalf("non-digits should be dropped, got %q", got)
	}
}
