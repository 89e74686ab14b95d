package errors

import "testing"

func TestValidateTimelineName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "antiquity", false},
		{"with spaces", "roman empire", false},
		{"with dash", "bronze-age", false},
		{"empty", "", true},
		{"parent traversal", "../secrets", true},
		{"double slash", "a//b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"control character", "a\tb", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimelineName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimelineName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}
