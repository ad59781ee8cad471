package errors

import "testing"

func TestValidateServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"local http", "http://127.0.0.1:5000", false},
		{"https with path", "https://calc.example.com/numeric", false},
		{"empty", "", true},
		{"no scheme", "localhost:5000", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no host", "http://", true},
		{"query", "http://localhost:5000/?debug=1", true},
		{"fragment", "http://localhost:5000/#top", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServerURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateServerURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateServerURL(%q) code = %v, want %v", tt.url, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}
