package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"logsummary/internal/report"
)

// Renderer выводит готовый отчёт
type Renderer interface {
	Render(res report.Result) error
}

// New выбирает рендерер по формату: "text" или "json"
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "text", "":
		return NewTextRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleMeta   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// TextRenderer печатает счётчики по строке на ключ, ключи отсортированы
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(res report.Result) error {
	header := styleHeader.Render(fmt.Sprintf("%s report", res.Kind))
	meta := styleMeta.Render(fmt.Sprintf("run %s, lines %d, malformed %d", res.RunID, res.Lines, res.Malformed))
	if _, err := fmt.Fprintf(r.w, "%s  %s\n", header, meta); err != nil {
		return err
	}
	if len(res.Counts) == 0 {
		_, err := fmt.Fprintln(r.w, styleEmpty.Render("no data"))
		return err
	}

	keys := make([]string, 0, len(res.Counts))
	width := 0
	for k := range res.Counts {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := styleKey.Render(fmt.Sprintf("%-*s", width, k))
		if _, err := fmt.Fprintf(r.w, "%s  %s\n", key, res.Counts[k]); err != nil {
			return err
		}
	}
	return nil
}

// JSONRenderer печатает плоский JSON-объект счётчиков, как его отдаёт HTTP
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(res report.Result) error {
	return r.enc.Encode(res.Counts)
}
