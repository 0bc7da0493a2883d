package models

import "strconv"

// CounterSuffix: суффикс всех ключей отчёта ("reports-counter", "Chrome_90-counter")
const CounterSuffix = "-counter"

// LogEntry: одна разобранная строка access-лога.
// Создаётся только при полном совпадении строки с грамматикой парсера,
// частично заполненных записей не бывает.
type LogEntry struct {
	ClientAddress string // IP или имя хоста
	IdentUser     string
	AuthUser      string
	Timestamp     string // сырое значение из [...], например "10/Oct/2020:13:55:36 +0000"
	RequestLine   string // "GET /modules/auth/login HTTP/1.1"
	StatusCode    int
	BodyBytes     int64
	Referrer      string
	UserAgent     string
}

// BrowserInfo: результат классификации user-agent.
// MajorVersion == 0 означает, что версия не определена.
type BrowserInfo struct {
	Name         string
	MajorVersion int
}

// HasVersion сообщает, известна ли мажорная версия браузера
func (b BrowserInfo) HasVersion() bool {
	return b.MajorVersion > 0
}

// Counts: счётчики отчёта: ключ и количество
type Counts map[string]int

// Inc увеличивает счётчик ключа на единицу
func (c Counts) Inc(key string) {
	c[key]++
}

// BrowserKey строит ключ отчёта по браузерам.
// Версия добавляется только если она положительная: "Chrome_90-counter", иначе "Chrome-counter".
func BrowserKey(info BrowserInfo) string {
	if info.HasVersion() {
		return info.Name + "_" + strconv.Itoa(info.MajorVersion) + CounterSuffix
	}
	return info.Name + CounterSuffix
}

// ModuleKey строит ключ отчёта по модулям: "reports" → "reports-counter"
func ModuleKey(segment string) string {
	return segment + CounterSuffix
}
