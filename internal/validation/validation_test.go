package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "reader@example.com", false},
		{"valid with plus", "reader+tag@example.com", false},
		{"valid subdomain", "a.b@mail.example.co.uk", false},
		{"missing at", "readerexample.com", true},
		{"missing domain", "reader@", true},
		{"missing tld", "reader@example", true},
		{"empty", "", true},
		{"spaces", "reader @example.com", true},
		{"too long", strings.Repeat("a", 250) + "@ex.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 128)))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Angela"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid http", "http://example.com/img.png", false},
		{"valid https", "https://picsum.photos/800/400", false},
		{"relative path", "/img.png", true},
		{"bare word", "img.png", true},
		{"ftp scheme", "ftp://example.com/img.png", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
