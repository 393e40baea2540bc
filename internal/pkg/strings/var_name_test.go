package strings

import "testing"

func TestLowerFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "pascal case", input: "InjectedWithDocumentation", want: "injectedWithDocumentation"},
		{name: "already lower", input: "age", want: "age"},
		{name: "acronym keeps tail", input: "URL", want: "uRL"},
		{name: "single rune", input: "T", want: "t"},
		{name: "non ascii", input: "Élan", want: "élan"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := LowerFirst(tt.input); got != tt.want {
				t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimUnderscores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "_t", want: "t"},
		{input: "__guid", want: "guid"},
		{input: "value_", want: "value_"},
		{input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := TrimUnderscores(tt.input); got != tt.want {
				t.Errorf("TrimUnderscores(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
