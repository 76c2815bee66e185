package shared

import (
	"errors"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic normalization",
			input: "Rap God",
			want:  "rap god",
		},
		{
			name:  "extra whitespace",
			input: "  Rap   God  ",
			want:  "rap god",
		},
		{
			name:  "mixed case",
			input: "RaP GoD",
			want:  "rap god",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected unique ids")
	}
}

func TestBrowserCommand(t *testing.T) {
	const url = "https://accounts.example/authorize?state=abc"

	tc := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", url}},
		{goos: "linux", want: []string{"xdg-open", url}},
		{goos: "windows", want: []string{"cmd", "/c", "start", url}},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cmd.Args) != len(tt.want) {
				t.Fatalf("got args %v, want %v", cmd.Args, tt.want)
			}
			for i, arg := range tt.want {
				if cmd.Args[i] != arg {
					t.Errorf("arg %d = %q, want %q", i, cmd.Args[i], arg)
				}
			}
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		if _, err := browserCommand("plan9", url); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})
}
