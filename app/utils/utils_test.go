package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sticky-notes/app/utils"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer sentence", 8, "a lon..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := utils.TruncateText(tt.text, tt.width); got != tt.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := utils.WrapText("buy milk and some bread", 10)

	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Errorf("Line %q exceeds width 10", line)
		}
	}

	if !strings.Contains(got, "buy milk") {
		t.Errorf("Expected words to stay together, got %q", got)
	}

	long := utils.WrapText(strings.Repeat("x", 25), 10)
	if lines := strings.Split(long, "\n"); len(lines) != 3 {
		t.Errorf("Expected long word split in 3 lines, got %q", long)
	}
}

func TestFitWidth(t *testing.T) {
	if got := utils.FitWidth("ab", 4); got != "ab  " {
		t.Errorf("Expected padding, got %q", got)
	}
	if got := utils.FitWidth("abcdef", 4); got != "abc…" {
		t.Errorf("Expected truncation, got %q", got)
	}
}

func TestCharCount(t *testing.T) {
	if n := utils.CharCount("note"); n != 4 {
		t.Errorf("Expected 4, got %d", n)
	}
	// flag emoji is two code points, one character
	if n := utils.CharCount("🇩🇪!"); n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
}

func TestFirstLine(t *testing.T) {
	if got := utils.FirstLine("\n  \nsecond\nthird"); got != "second" {
		t.Errorf("Expected 'second', got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if utils.Clamp(5, 0, 3) != 3 || utils.Clamp(-1, 0, 3) != 0 || utils.Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp returned unexpected values")
	}
	if utils.Clamp(0, 0, -1) != 0 {
		t.Errorf("Expected low bound to win for empty ranges")
	}
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.conf")

	f, err := utils.CreateFile(path, false)
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if f != nil {
		t.Errorf("Expected closed file to not be returned")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("File was not created: %v", err)
	}
}
