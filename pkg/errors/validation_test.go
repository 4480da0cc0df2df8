package errors

import "testing"

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "hero.png", false},
		{"valid nested", "weapons/sword.png", false},
		{"valid with dots", "v1.2/hero.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateImageKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "weapons/sword.png", false},
		{"uppercase rejected", "Weapons/Sword.png", true},
		{"backslash rejected", "weapons\\sword.png", true},
		{"empty", "", true},
		{"traversal", "../sword.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeMalformedInput,
		ErrCodeInvalidGraph,
		ErrCodeAssetMissing,
		ErrCodeCanonicalMissing,
		ErrCodeDimensionMismatch,
		ErrCodeResampleFailed,
		ErrCodePackOversize,
		ErrCodeCancelled,
		ErrCodeInvalidInput,
		ErrCodeNotFound,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
