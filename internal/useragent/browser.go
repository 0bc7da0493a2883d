package useragent

import (
	"regexp"
	"strconv"
	"strings"

	"logsummary/internal/models"
)

// Канонические имена браузеров, попадающие в ключи отчёта
const (
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	BrowserIE      = "IE"
	BrowserSamsung = "Samsung"
	BrowserUC      = "UC"
	BrowserYandex  = "Yandex"
	BrowserVivaldi = "Vivaldi"
	BrowserBrave   = "Brave"
	BrowserBot     = "Bot"
	BrowserUnknown = "Unknown"
)

// maxVersionLen ограничивает длину извлекаемой версии
const maxVersionLen = 20

// Classifier определяет браузер по строке user-agent
type Classifier interface {
	Classify(raw string) models.BrowserInfo
}

// ClassifierFunc позволяет использовать обычную функцию как Classifier
type ClassifierFunc func(raw string) models.BrowserInfo

func (f ClassifierFunc) Classify(raw string) models.BrowserInfo { return f(raw) }

// Default: классификатор по встроенной таблице шаблонов
var Default Classifier = ClassifierFunc(Classify)

// browserPattern описывает признаки одного браузера.
// Должно встретиться любое из Keywords (или совпасть Match) и ни одного из Excludes.
// Prefer, если задан и нашёл версию, важнее Regex.
type browserPattern struct {
	Name     string
	Keywords []string
	Match    *regexp.Regexp
	Excludes []string
	Regex    *regexp.Regexp
	Prefer   *regexp.Regexp
}

// browserPatterns проверяются по порядку: Edge, Opera и прочие
// Chromium-браузеры содержат "chrome/", поэтому стоят раньше Chrome,
// Chrome и Firefox на iOS содержат "safari", поэтому Safari проверяется после них.
var browserPatterns = []browserPattern{
	{Name: "Googlebot", Keywords: []string{"googlebot"}, Regex: regexp.MustCompile(`googlebot/([\d.]+)`)},
	{Name: "Bingbot", Keywords: []string{"bingbot"}, Regex: regexp.MustCompile(`bingbot/([\d.]+)`)},
	{Name: "YandexBot", Keywords: []string{"yandexbot"}, Regex: regexp.MustCompile(`yandexbot/([\d.]+)`)},
	{Name: "Baiduspider", Keywords: []string{"baiduspider"}, Regex: regexp.MustCompile(`baiduspider/([\d.]+)`)},
	// "bot" только отдельным токеном: модели телефонов вроде CUBOT содержат его внутри слова
	{Name: BrowserBot, Match: regexp.MustCompile(`\bbot\b|bot/|bot;|spider|crawler|facebookexternalhit`)},
	{Name: BrowserEdge, Keywords: []string{"edg/", "edge/", "edga/", "edgios/"}, Regex: regexp.MustCompile(`(?:edge|edga|edgios|edg)/([\d.]+)`)},
	{Name: BrowserSamsung, Keywords: []string{"samsungbrowser"}, Regex: regexp.MustCompile(`samsungbrowser/([\d.]+)`)},
	{Name: BrowserUC, Keywords: []string{"ucbrowser"}, Regex: regexp.MustCompile(`ucbrowser/([\d.]+)`)},
	{Name: BrowserYandex, Keywords: []string{"yabrowser", "yandexbrowser"}, Regex: regexp.MustCompile(`(?:yabrowser|yandexbrowser)/([\d.]+)`)},
	{Name: BrowserVivaldi, Keywords: []string{"vivaldi"}, Regex: regexp.MustCompile(`vivaldi/([\d.]+)`)},
	{Name: BrowserBrave, Keywords: []string{"brave"}, Regex: regexp.MustCompile(`brave/([\d.]+)`)},
	{Name: BrowserOpera, Keywords: []string{"opr/", "opios/"}, Regex: regexp.MustCompile(`(?:opr|opios)/([\d.]+)`)},
	// Presto-версии замораживают "Opera/9.80", настоящая версия в "Version/"
	{Name: BrowserOpera, Keywords: []string{"opera"}, Regex: regexp.MustCompile(`opera[/\s]([\d.]+)`), Prefer: regexp.MustCompile(`version/([\d.]+)`)},
	{Name: BrowserChrome, Keywords: []string{"chrome/", "crios/", "chromium/"}, Regex: regexp.MustCompile(`(?:chrome|crios|chromium)/([\d.]+)`)},
	{Name: BrowserFirefox, Keywords: []string{"firefox/", "fxios/"}, Regex: regexp.MustCompile(`(?:firefox|fxios)/([\d.]+)`)},
	{Name: BrowserSafari, Keywords: []string{"safari"}, Excludes: []string{"chrome", "chromium", "android"}, Regex: regexp.MustCompile(`version/([\d.]+)`)},
	{Name: BrowserIE, Keywords: []string{"msie "}, Regex: regexp.MustCompile(`msie ([\d.]+)`)},
}

// matches проверяет, подходит ли строка под шаблон
func (p browserPattern) matches(lowerUA string) bool {
	for _, exclude := range p.Excludes {
		if strings.Contains(lowerUA, exclude) {
			return false
		}
	}
	if p.Match != nil && p.Match.MatchString(lowerUA) {
		return true
	}
	for _, keyword := range p.Keywords {
		if strings.Contains(lowerUA, keyword) {
			return true
		}
	}
	return false
}

// extractVersion достаёт версию по регулярному выражению шаблона
func extractVersion(lowerUA string, re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(lowerUA)
	if len(m) < 2 {
		return ""
	}
	version := m[1]
	if len(version) > maxVersionLen {
		version = version[:maxVersionLen]
	}
	return version
}

func (p browserPattern) version(lowerUA string) string {
	if v := extractVersion(lowerUA, p.Prefer); v != "" {
		return v
	}
	return extractVersion(lowerUA, p.Regex)
}

// majorVersion возвращает мажорную часть версии ("90.0.4430" → 90), 0 если её нет
func majorVersion(version string) int {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Classify определяет браузер и его мажорную версию.
// Никогда не завершается ошибкой: нераспознанная строка даёт BrowserUnknown без версии.
func Classify(raw string) models.BrowserInfo {
	lowerUA := strings.ToLower(strings.TrimSpace(raw))
	if lowerUA == "" || lowerUA == "-" {
		return models.BrowserInfo{Name: BrowserUnknown}
	}

	// IE 11 не содержит "msie", только Trident
	if strings.Contains(lowerUA, "trident/") && !strings.Contains(lowerUA, "msie") {
		return models.BrowserInfo{Name: BrowserIE, MajorVersion: 11}
	}

	for _, p := range browserPatterns {
		if p.matches(lowerUA) {
			return models.BrowserInfo{
				Name:         p.Name,
				MajorVersion: majorVersion(p.version(lowerUA)),
			}
		}
	}

	return models.BrowserInfo{Name: BrowserUnknown}
}
