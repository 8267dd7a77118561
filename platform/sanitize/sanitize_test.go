package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Asha   Rao ", "Asha Rao"},
		{"<b>Hello</b> there", "Hello there"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;call me", "alert(1)call me"},
		{"line one\r\n\tline   two", "line one\nline two"},
		{"Tom & Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Fatalf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
