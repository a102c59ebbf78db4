package models

import "testing"

func TestNewCardNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		card := NewCardNumber()
		if len(card) != 16 {
			t.Fatalf("len(%q)=%d want=16", card, len(card))
		}
		if card[0] != '4' {
			t.Fatalf("card %q does not start with 4", card)
		}
		if !ValidCardNumber(card) {
			t.Fatalf("generated card %q fails the Luhn check", card)
		}
		if seen[card] {
			t.Fatalf("duplicate card generated: %q", card)
		}
		seen[card] = true
	}
}

func TestValidCardNumber(t *testing.T) {
	// 4242... is a well-known Luhn-valid test number
	if !ValidCardNumber("4242424242424242") {
		t.Error("expected 4242424242424242 to be valid")
	}
	if !ValidCardNumber("4242 4242 4242 4242") {
		t.Error("spaces should be ignored")
	}
	for _, bad := range []string{"", "4242424242424241", "123", "42424242424242ab"} {
		if ValidCardNumber(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}
