package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"logsummary/internal/models"
)

// NumFields: количество групп, которое обязана дать строка лога
const NumFields = 9

// ErrMalformedLine: строка не соответствует грамматике access-лога
var ErrMalformedLine = errors.New("malformed log line")

// logEntryPattern: combined log format:
// <ip> <ident> <user> [<timestamp>] "<request>" <status> <bytes> "<referrer>" "<useragent>"
const logEntryPattern = `^([\d.]+) (\S+) (\S+) \[([\w:/]+\s[+\-]\d{4})\] "(.+?)" (\d{3}) (\d+) "([^"]+)" "([^"]+)"$`

// LineParser разбирает строки access-лога.
// Регулярное выражение компилируется один раз, экземпляр можно использовать из нескольких горутин.
type LineParser struct {
	re *regexp.Regexp
}

// New создаёт парсер со стандартной грамматикой
func New() *LineParser {
	return &LineParser{re: regexp.MustCompile(logEntryPattern)}
}

// Parse разбирает одну строку в LogEntry.
// Строка должна совпасть с грамматикой целиком, иначе возвращается ошибка ErrMalformedLine.
func (p *LineParser) Parse(line string) (models.LogEntry, error) {
	m := p.re.FindStringSubmatch(line)
	if len(m) != NumFields+1 {
		return models.LogEntry{}, ErrMalformedLine
	}

	status, err := strconv.Atoi(m[6])
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: status %q: %v", ErrMalformedLine, m[6], err)
	}
	size, err := strconv.ParseInt(m[7], 10, 64)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: bytes %q: %v", ErrMalformedLine, m[7], err)
	}

	return models.LogEntry{
		ClientAddress: m[1],
		IdentUser:     m[2],
		AuthUser:      m[3],
		Timestamp:     m[4],
		RequestLine:   m[5],
		StatusCode:    status,
		BodyBytes:     size,
		Referrer:      m[8],
		UserAgent:     m[9],
	}, nil
}
