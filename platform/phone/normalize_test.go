package phone

import "testing"

func TestNormalizeE164AssumesIndia(t *testing.T) {
	cases := map[string]string{
		"98765 43210":     "+919876543210",
		"+91 98765-43210": "+919876543210",
		"  ":              "",
		"not a number":    "not a number",
	}
	for in, want := range cases {
		if got := NormalizeE164(in); got != want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("9876543210") {
		t.Fatalf("expected mobile number to be valid")
	}
	if IsValid("12345") {
		t.Fatalf("expected short number to be invalid")
	}
}

func TestWhatsAppDigits(t *testing.T) {
	if got := WhatsAppDigits("+91 98765 43210"); got != "919876543210" {
		t.Fatalf("unexpected digits %q", got)
	}
}
