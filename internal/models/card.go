package models

import (
	"math/rand"
	"strconv"
	"strings"
)

// NewCardNumber generates a 16-digit Visa-range card number with a
// valid Luhn check digit. Used when provisioning an account at signup.
func NewCardNumber() string {
	var b strings.Builder
	b.WriteByte('4')
	for i := 0; i < 14; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	body := b.String()
	return body + strconv.Itoa(luhnCheckDigit(body))
}

// ValidCardNumber reports whether the number passes the mod 10 check.
func ValidCardNumber(number string) bool {
	clean := strings.ReplaceAll(number, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if len(clean) < 13 || len(clean) > 19 {
		return false
	}
	sum := 0
	alternate := false
	for i := len(clean) - 1; i >= 0; i-- {
		c := clean[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}

func luhnCheckDigit(body string) int {
	sum := 0
	alternate := true
	for i := len(body) - 1; i >= 0; i-- {
		n := int(body[i] - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return (10 - sum%10) % 10
}
