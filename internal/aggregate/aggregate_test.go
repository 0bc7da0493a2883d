package aggregate

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"logsummary/internal/models"
	"logsummary/internal/useragent"
)

func entry(request, ua string) models.LogEntry {
	return models.LogEntry{
		ClientAddress: "1.2.3.4",
		IdentUser:     "-",
		AuthUser:      "-",
		Timestamp:     "10/Oct/2020:13:55:36 +0000",
		RequestLine:   request,
		StatusCode:    200,
		BodyBytes:     512,
		Referrer:      "-",
		UserAgent:     ua,
	}
}

func sample() []models.LogEntry {
	return []models.LogEntry{
		entry("GET /modules/reports/x HTTP/1.1", "Mozilla/5.0 Chrome/90.0"),
		entry("GET /modules/reports/y HTTP/1.1", "Mozilla/5.0 Chrome/90.0"),
		entry("GET /modules/auth/login HTTP/1.1", "Mozilla/5.0 Firefox/89.0"),
		entry("GET /modules/bad-seg/x HTTP/1.1", "Mozilla/5.0 Firefox/89.0"),
		entry("GET /static/app.js HTTP/1.1", "curl/8.4.0"),
		entry("GET /modules/list?page=2 HTTP/1.1", "Mozilla/5.0 Chrome/"),
	}
}

func TestModules(t *testing.T) {
	got := Run(sample(), NewModules())

	want := models.Counts{
		"reports-counter": 2,
		"auth-counter":    1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("module counts mismatch (-want +got):\n%s", diff)
	}
}

func TestModulesEmpty(t *testing.T) {
	got := Run(nil, NewModules())
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestModulesCommutative(t *testing.T) {
	entries := sample()
	want := Run(entries, NewModules())

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.LogEntry(nil), entries...)
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		if diff := cmp.Diff(want, Run(shuffled, NewModules())); diff != "" {
			t.Fatalf("permutation %d changed counts (-want +got):\n%s", i, diff)
		}
	}
}

func TestBrowsers(t *testing.T) {
	got := Run(sample(), NewBrowsers(nil))

	want := models.Counts{
		"Chrome_90-counter":  2,
		"Firefox_89-counter": 2,
		"Unknown-counter":    1,
		"Chrome-counter":     1,
		"reports-counter":    2,
		"auth-counter":       1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("browser counts mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowsersVersionZeroUsesPlainKey(t *testing.T) {
	zero := useragent.ClassifierFunc(func(string) models.BrowserInfo {
		return models.BrowserInfo{Name: "Chrome", MajorVersion: 0}
	})

	got := Run([]models.LogEntry{entry("GET / HTTP/1.1", "whatever")}, NewBrowsers(zero))

	assert.Equal(t, models.Counts{"Chrome-counter": 1}, got)
	assert.NotContains(t, got, "Chrome_0-counter")
}

func TestBrowsersScenario(t *testing.T) {
	entries := []models.LogEntry{
		entry("GET /modules/reports/x HTTP/1.1", "Mozilla/5.0 Chrome/90.0"),
		entry("GET /modules/reports/y HTTP/1.1", "Mozilla/5.0 Chrome/90.0"),
	}

	assert.Equal(t, models.Counts{"reports-counter": 2}, Run(entries, NewModules()))
	assert.Equal(t, models.Counts{"Chrome_90-counter": 2, "reports-counter": 2}, Run(entries, NewBrowsers(useragent.Default)))
}

func TestAggregatorsAreIndependent(t *testing.T) {
	first := NewModules()
	second := NewModules()

	first.Add(entry("GET /modules/a/x HTTP/1.1", "-"))

	assert.Equal(t, 1, first.Counts()["a-counter"])
	assert.Empty(t, second.Counts())
}
