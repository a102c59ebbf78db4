package validate

import (
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 {
		return &ErrField{Field: field, Msg: "invalid email"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if len(strings.TrimSpace(value)) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}
