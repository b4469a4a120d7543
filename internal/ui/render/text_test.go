package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "hello", "hello"},
		{"keeps newline and tab", "a\nb\tc", "a\nb\tc"},
		{"drops carriage return", "line\r", "line"},
		{"drops C1 controls", "a\u0085b", "ab"},
		{"nbsp to space", "a\u00a0b", "a b"},
		{"invalid utf-8", "a\xffb", "ab"},
		{"accents untouched", "déjà vu", "déjà vu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"wide characters", "日本語テキスト", 7, "日本語…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateStyled_KeepsWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("a long styled line")

	got := TruncateStyled(styled, 6)

	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox jumps", 10)

	for _, l := range lines {
		if w := lipgloss.Width(l); w > 10 {
			t.Errorf("line %q is %d wide, want <= 10", l, w)
		}
	}
	if got := strings.Join(strings.Fields(strings.Join(lines, " ")), " "); got != "the quick brown fox jumps" {
		t.Errorf("wrapped words = %q", got)
	}
}

func TestWrap_KeepsCueLines(t *testing.T) {
	lines := Wrap("one\ntwo", 40)

	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("Wrap() = %q", lines)
	}
}

func TestPadAndCenter(t *testing.T) {
	if got := Pad("ab", 5); got != "ab   " {
		t.Errorf("Pad() = %q", got)
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center() = %q", got)
	}
	if got := Center("toolong", 3); got != "toolong" {
		t.Errorf("Center() overflow = %q", got)
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)

	if lipgloss.Width(got) != 20 {
		t.Errorf("width = %d, want 20", lipgloss.Width(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row() = %q", got)
	}
}
