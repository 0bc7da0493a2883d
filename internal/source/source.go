package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"logsummary/internal/config"
)

// ErrUnavailable: не удалось получить поток строк (соединение, авторизация, файл, распаковка)
var ErrUnavailable = errors.New("log source unavailable")

// maxLineSize: предел длины одной строки лога
const maxLineSize = 1 << 20

// Source отдаёт строки лога по одной.
// Ошибка, обёрнутая в ErrUnavailable, означает, что ни одной строки прочитано не было.
// Любая другая ошибка обрывает поток: уже переданные строки остаются в силе.
type Source interface {
	Each(ctx context.Context, fn func(line string)) error
}

// FromConfig выбирает реализацию источника по Source.Kind
func FromConfig(cfg *config.Config, logger *zap.Logger) (Source, error) {
	switch cfg.Source.Kind {
	case config.SourceSFTP:
		return NewSFTP(cfg.Remote, logger.Named("sftp")), nil
	case config.SourceFile:
		return NewFile(cfg.Source.Path, logger.Named("file")), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// scanLines построчно читает r, проверяя контекст между строками
func scanLines(ctx context.Context, r io.Reader, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(sc.Text())
	}
	return sc.Err()
}
