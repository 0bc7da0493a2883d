package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsummary/internal/report"
)

var result = report.Result{
	Kind:   report.KindBrowser,
	RunID:  "3f2b8c1e-0000-4000-8000-000000000000",
	Counts: map[string]string{"reports-counter": "2", "Chrome_90-counter": "2"},
	Lines:  2,
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf).Render(result))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), "raw: %s", buf.String())
	assert.Equal(t, result.Counts, got)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(result))

	out := buf.String()
	assert.Contains(t, out, result.RunID)

	chrome := strings.Index(out, "Chrome_90-counter")
	reports := strings.Index(out, "reports-counter")
	require.NotEqual(t, -1, chrome)
	require.NotEqual(t, -1, reports)
	assert.Less(t, chrome, reports, "keys must be sorted")
}

func TestTextRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(report.Result{Kind: report.KindModule, Counts: map[string]string{}}))
	assert.Contains(t, buf.String(), "no data")
}

func TestNew(t *testing.T) {
	r, err := New("json", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &JSONRenderer{}, r)

	r, err = New("text", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, r)

	_, err = New("xml", &bytes.Buffer{})
	assert.Error(t, err)
}
