package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractModule(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    string
		wantOK  bool
	}{
		{"simple", "GET /modules/auth/login HTTP/1.1", "auth", true},
		{"dash filtered", "GET /modules/bad-seg/x HTTP/1.1", "", false},
		{"question mark filtered", "GET /modules/list?page=2 HTTP/1.1", "", false},
		{"ampersand filtered", "GET /modules/a&b/x HTTP/1.1", "", false},
		{"no marker", "GET /other/path HTTP/1.1", "", false},
		{"empty segment", "GET /modules//x HTTP/1.1", "", false},
		{"marker at the end", "GET /modules", "", false},
		{"marker followed by one char", "GET /modules/", "", false},
		{"last occurrence wins", "GET /modules/first/modules/second/x HTTP/1.1", "second", true},
		{"marker inside a word", "GET /app/mymodules/core/x HTTP/1.1", "core", true},
		// Сегмент без завершающего "/" захватывает остаток строки запроса
		{"segment runs into protocol", "GET /modules/auth HTTP/1.1", "auth HTTP", true},
		{"protocol dash filtered", "GET /modules/auth HTTP-1", "", false},
		{"multibyte char after marker", "GET /modulesé/x HTTP/1.1", "", false},
		{"multibyte char then segment", "GET /modulesé_x/y HTTP/1.1", "_x", true},
		{"multibyte segment", "GET /modules/отчёты/x HTTP/1.1", "отчёты", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractModule(tc.request)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
