package html

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ubuntu   22.04\n\tDesktop ", "Ubuntu 22.04 Desktop"},
		{"a  b", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("\n  4.1 GB \n 1,234"); got != "4.1 GB" {
		t.Errorf("FirstLine() = %q", got)
	}
	if got := FirstLine(" \n "); got != "" {
		t.Errorf("FirstLine() = %q, want empty", got)
	}
}

func TestCollapseWhitespaceNBSP(t *testing.T) {
	if got := CollapseWhitespace("a\u00a0\u00a0b"); got != "a b" {
		t.Errorf("CollapseWhitespace() = %q", got)
	}
}
