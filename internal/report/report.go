package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logsummary/internal/aggregate"
	"logsummary/internal/parser"
	"logsummary/internal/source"
	"logsummary/internal/useragent"
)

// Kind: вид отчёта
type Kind string

const (
	KindModule  Kind = "module"
	KindBrowser Kind = "browser"
)

// ErrUnknownKind: запрошен неизвестный вид отчёта
var ErrUnknownKind = errors.New("unknown report kind")

// ParseKind разбирает вид отчёта из строки ("module", "browser")
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindModule, KindBrowser:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Result: готовый отчёт
type Result struct {
	Kind      Kind              `json:"kind"`
	RunID     string            `json:"run_id"`
	Counts    map[string]string `json:"counts"`
	Lines     int               `json:"lines"`     // прочитано строк
	Malformed int               `json:"malformed"` // из них не прошло разбор
}

// Service строит отчёты. Парсер и классификатор общие, счётчики создаются заново на каждый вызов,
// поэтому один Service можно вызывать из нескольких запросов одновременно.
type Service struct {
	parser     *parser.LineParser
	classifier useragent.Classifier
	logger     *zap.Logger
}

// NewService создаёт сервис; nil-классификатор заменяется на useragent.Default
func NewService(classifier useragent.Classifier, logger *zap.Logger) *Service {
	if classifier == nil {
		classifier = useragent.Default
	}
	return &Service{
		parser:     parser.New(),
		classifier: classifier,
		logger:     logger,
	}
}

func (s *Service) newAggregator(kind Kind) (aggregate.Aggregator, error) {
	switch kind {
	case KindModule:
		return aggregate.NewModules(), nil
	case KindBrowser:
		return aggregate.NewBrowsers(s.classifier), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Build читает строки из src и строит отчёт вида kind.
// Битые строки пропускаются и логируются. Недоступный источник даёт пустой отчёт,
// при обрыве чтения отчёт строится по уже прочитанным строкам. Ошибку возвращает только неизвестный kind.
func (s *Service) Build(ctx context.Context, src source.Source, kind Kind) (Result, error) {
	agg, err := s.newAggregator(kind)
	if err != nil {
		return Result{}, err
	}

	res := Result{Kind: kind, RunID: uuid.NewString()}
	lg := s.logger.With(zap.String("run", res.RunID), zap.String("kind", string(kind)))

	err = src.Each(ctx, func(line string) {
		res.Lines++
		entry, err := s.parser.Parse(line)
		if err != nil {
			res.Malformed++
			lg.Warn("Некорректная строка лога, пропускаем", zap.String("line", line))
			return
		}
		agg.Add(entry)
	})
	switch {
	case errors.Is(err, source.ErrUnavailable):
		lg.Error("Лог недоступен, отчёт будет пустым", zap.Error(err))
	case err != nil:
		lg.Error("Чтение лога прервано, отчёт неполный", zap.Error(err), zap.Int("lines", res.Lines))
	}

	res.Counts = Format(agg.Counts())
	lg.Info("Отчёт построен",
		zap.Int("lines", res.Lines),
		zap.Int("malformed", res.Malformed),
		zap.Int("keys", len(res.Counts)),
	)
	return res, nil
}
