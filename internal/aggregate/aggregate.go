package aggregate

import (
	"logsummary/internal/models"
	"logsummary/internal/parser"
	"logsummary/internal/useragent"
)

// Aggregator накапливает счётчики по потоку записей.
// Экземпляр не потокобезопасен: на каждый отчёт создаётся новый.
type Aggregator interface {
	Add(entry models.LogEntry)
	Counts() models.Counts
}

// Run сворачивает срез записей в счётчики
func Run(entries []models.LogEntry, a Aggregator) models.Counts {
	for _, entry := range entries {
		a.Add(entry)
	}
	return a.Counts()
}

// Modules считает запросы по модулям
type Modules struct {
	counts models.Counts
}

func NewModules() *Modules {
	return &Modules{counts: make(models.Counts)}
}

// Add учитывает запись, если в строке запроса есть модуль
func (m *Modules) Add(entry models.LogEntry) {
	if segment, ok := parser.ExtractModule(entry.RequestLine); ok {
		m.counts.Inc(models.ModuleKey(segment))
	}
}

func (m *Modules) Counts() models.Counts {
	return m.counts
}

// Browsers считает запросы по браузерам.
// В тот же словарь попадают и счётчики модулей.
type Browsers struct {
	classifier useragent.Classifier
	counts     models.Counts
}

// NewBrowsers создаёт агрегатор; nil означает useragent.Default
func NewBrowsers(c useragent.Classifier) *Browsers {
	if c == nil {
		c = useragent.Default
	}
	return &Browsers{classifier: c, counts: make(models.Counts)}
}

func (b *Browsers) Add(entry models.LogEntry) {
	info := b.classifier.Classify(entry.UserAgent)
	b.counts.Inc(models.BrowserKey(info))
	b.countModuleAlongside(entry)
}

// countModuleAlongside добавляет счётчик модуля в общий словарь браузерного отчёта.
// Если отчёты когда-нибудь разделят, достаточно убрать этот вызов из Add.
func (b *Browsers) countModuleAlongside(entry models.LogEntry) {
	if segment, ok := parser.ExtractModule(entry.RequestLine); ok {
		b.counts.Inc(models.ModuleKey(segment))
	}
}

func (b *Browsers) Counts() models.Counts {
	return b.counts
}
