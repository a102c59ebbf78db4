package models

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"30", 3000},
		{"30.5", 3050},
		{"30.50", 3050},
		{"0.01", 1},
		{"1000000", 100000000},
		{"-5", -500}, // sign preserved; the engine rejects non-positive amounts
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		if err != nil {
			t.Errorf("ParseMoney(%q) err=%v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMoney(%q)=%d want=%d", c.in, got, c.want)
		}
	}
}

func TestParseMoneyRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1,50", "30.505", "0.001"} {
		if _, err := ParseMoney(in); !errors.Is(err, ErrMalformedAmount) {
			t.Errorf("ParseMoney(%q): want ErrMalformedAmount, got %v", in, err)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{3000, "30.00"},
		{3050, "30.50"},
		{1, "0.01"},
		{0, "0.00"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Money(%d).String()=%q want=%q", c.in, got, c.want)
		}
	}
}
