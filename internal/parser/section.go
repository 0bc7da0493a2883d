package parser

import (
	"strings"
	"unicode/utf8"
)

const moduleMarker = "modules"

// ExtractModule достаёт имя модуля из строки запроса:
// первый сегмент пути после ПОСЛЕДНЕГО вхождения "modules".
// Пропускается маркер и один следующий за ним символ (обычно "/"), остаток режется по "/".
// Символ пропускается целиком, даже если он многобайтный.
// Пустой сегмент и сегменты с '-', '?' или '&' отбрасываются: это параметры, а не модули.
func ExtractModule(requestLine string) (string, bool) {
	idx := strings.LastIndex(requestLine, moduleMarker)
	if idx == -1 {
		return "", false
	}
	rest := requestLine[idx+len(moduleMarker):]
	if rest == "" {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(rest)

	segment, _, _ := strings.Cut(rest[size:], "/")
	if segment == "" || strings.ContainsAny(segment, "-?&") {
		return "", false
	}
	return segment, true
}
