package validate

import "testing"

func TestRequired(t *testing.T) {
	if Required("name", "value") != nil {
		t.Error("non-empty value flagged")
	}
	if e := Required("name", "  "); e == nil || e.Field != "name" {
		t.Errorf("blank value not flagged: %+v", e)
	}
}

func TestEmail(t *testing.T) {
	if Email("email", "a@b.com") != nil {
		t.Error("valid email flagged")
	}
	for _, bad := range []string{"", "nope", "@b.com", "a@"} {
		if Email("email", bad) == nil {
			t.Errorf("invalid email %q accepted", bad)
		}
	}
}

func TestMinLen(t *testing.T) {
	if MinLen("password", "12345678", 8) != nil {
		t.Error("long enough value flagged")
	}
	if MinLen("password", "short", 8) == nil {
		t.Error("short value accepted")
	}
}

func TestErrsError(t *testing.T) {
	errs := Errs{{Field: "a", Msg: "required"}, {Field: "b", Msg: "invalid"}}
	if got := errs.Error(); got != "a: required; b: invalid" {
		t.Errorf("Error()=%q", got)
	}
}
