package validator

import (
	"errors"
	"testing"
)

type contactForm struct {
	Name  string `validate:"required,max=100"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,in_phone"`
}

func TestInPhoneTag(t *testing.T) {
	val := New()

	if err := val.Struct(contactForm{Name: "Asha", Email: "asha@example.com", Phone: "+91 98765 43210"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	err := val.Struct(contactForm{Name: "Asha", Email: "nope", Phone: "12345"})
	fields := FieldErrors(err)
	if fields["Email"] != "email" || fields["Phone"] != "in_phone" {
		t.Fatalf("unexpected field errors %v", fields)
	}
	if _, ok := fields["Name"]; ok {
		t.Fatalf("name is valid and must not be reported")
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(errors.New("boom")) != nil {
		t.Fatalf("expected nil for non-validation errors")
	}
}
