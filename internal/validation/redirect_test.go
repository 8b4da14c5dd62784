package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeURL(t *testing.T) {
	const host = "http://myhost.com/"

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"relative path", "/post/3", true},
		{"relative path with query", "/login?exist=a@b.com", true},
		{"absolute same host", "http://myhost.com/about", true},
		{"absolute same host https", "https://myhost.com/about", true},
		{"external absolute", "https://evil.example/x", false},
		{"external with same path", "http://evil.example/post/3", false},
		{"protocol-relative external", "//evil.example/x", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"data scheme", "data:text/html,hi", false},
		{"same host different port", "http://myhost.com:8080/x", false},
		{"empty", "", true}, // resolves to the host URL itself
		{"unparseable", "http://[::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeURL(tt.target, host))
		})
	}
}

func TestIsSafeURL_BadHostURL(t *testing.T) {
	assert.False(t, IsSafeURL("/post/3", "http://[::1"))
}

func TestSafeRedirectTarget(t *testing.T) {
	const host = "http://myhost.com/"

	t.Run("first safe candidate wins", func(t *testing.T) {
		got := SafeRedirectTarget(host, "/post/3", "http://myhost.com/about")
		assert.Equal(t, "/post/3", got)
	})

	t.Run("skips empty candidates", func(t *testing.T) {
		got := SafeRedirectTarget(host, "", "/about")
		assert.Equal(t, "/about", got)
	})

	t.Run("skips unsafe candidates", func(t *testing.T) {
		got := SafeRedirectTarget(host, "https://evil.example/x", "/about")
		assert.Equal(t, "/about", got)
	})

	t.Run("no candidate qualifies", func(t *testing.T) {
		got := SafeRedirectTarget(host, "https://evil.example/x")
		assert.Equal(t, "", got)
	})

	t.Run("no candidates at all", func(t *testing.T) {
		assert.Equal(t, "", SafeRedirectTarget(host))
	})
}
