package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsummary/internal/models"
)

const chromeLine = `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET /modules/reports/x HTTP/1.1" 200 512 "-" "Mozilla/5.0 Chrome/90.0"`

func TestParseValidLine(t *testing.T) {
	p := New()

	entry, err := p.Parse(chromeLine)
	require.NoError(t, err)

	assert.Equal(t, models.LogEntry{
		ClientAddress: "1.2.3.4",
		IdentUser:     "-",
		AuthUser:      "-",
		Timestamp:     "10/Oct/2020:13:55:36 +0000",
		RequestLine:   "GET /modules/reports/x HTTP/1.1",
		StatusCode:    200,
		BodyBytes:     512,
		Referrer:      "-",
		UserAgent:     "Mozilla/5.0 Chrome/90.0",
	}, entry)
}

func TestParseKeepsFieldsUnmodified(t *testing.T) {
	p := New()

	line := `10.0.0.7 ident frank [17/Feb/2026:12:00:00 -0500] "POST /modules/auth/login?next=/ HTTP/2.0" 302 0 "https://example.org/a b" "curl/8.4.0"`
	entry, err := p.Parse(line)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.7", entry.ClientAddress)
	assert.Equal(t, "ident", entry.IdentUser)
	assert.Equal(t, "frank", entry.AuthUser)
	assert.Equal(t, "17/Feb/2026:12:00:00 -0500", entry.Timestamp)
	assert.Equal(t, "POST /modules/auth/login?next=/ HTTP/2.0", entry.RequestLine)
	assert.Equal(t, 302, entry.StatusCode)
	assert.Equal(t, int64(0), entry.BodyBytes)
	assert.Equal(t, "https://example.org/a b", entry.Referrer)
	assert.Equal(t, "curl/8.4.0", entry.UserAgent)
}

func TestParseMalformed(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"plain text", "something went wrong"},
		{"missing user agent", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 200 512 "-"`},
		{"common log format only", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 200 512`},
		{"unquoted request", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] GET / HTTP/1.1 200 512 "-" "curl/8"`},
		{"two digit status", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 20 512 "-" "curl/8"`},
		{"four digit status", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 2000 512 "-" "curl/8"`},
		{"dash as bytes", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 200 - "-" "curl/8"`},
		{"hostname as client", `example.org - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 200 512 "-" "curl/8"`},
		{"timestamp without offset", `1.2.3.4 - - [10/Oct/2020:13:55:36] "GET / HTTP/1.1" 200 512 "-" "curl/8"`},
		{"trailing garbage", chromeLine + " extra"},
		{"leading garbage", "> " + chromeLine},
		{"bytes overflow", `1.2.3.4 - - [10/Oct/2020:13:55:36 +0000] "GET / HTTP/1.1" 200 99999999999999999999 "-" "curl/8"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := p.Parse(tc.line)
			require.ErrorIs(t, err, ErrMalformedLine)
			assert.Equal(t, models.LogEntry{}, entry)
		})
	}
}

func TestParserIsReusable(t *testing.T) {
	p := New()

	for i := 0; i < 3; i++ {
		_, err := p.Parse(chromeLine)
		require.NoError(t, err)
		_, err = p.Parse("garbage")
		require.Error(t, err)
	}
}
