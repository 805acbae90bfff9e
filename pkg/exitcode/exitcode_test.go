package exitcode

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{ConfigError, "Configuration error"},
		{SourceError, "Source tree error"},
		{OutputError, "Output tree error"},
		{ManifestError, "Manifest error"},
		{ResolutionMiss, "No matching variant"},
		{ServerError, "Server error"},
		{99, "Unknown error"},
	}
	for _, tt := range tests {
		if got := String(tt.code); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []int{Success, GeneralError, ConfigError, SourceError, OutputError, ManifestError, ResolutionMiss, ServerError}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d assigned twice", c)
		}
		seen[c] = true
	}
}
