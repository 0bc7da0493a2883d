package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hpcloud/tail"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// File читает лог с локального диска.
// Файлы *.gz распаковываются, остальные читаются через tail без слежения за дописыванием.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	return &File{path: path, logger: logger}
}

func (f *File) Each(ctx context.Context, fn func(line string)) error {
	if strings.HasSuffix(f.path, ".gz") {
		return f.eachGzip(ctx, fn)
	}
	return f.eachPlain(ctx, fn)
}

func (f *File) eachGzip(ctx context.Context, fn func(line string)) error {
	fh, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer fh.Close()

	zr, err := gzip.NewReader(fh)
	if err != nil {
		return fmt.Errorf("%w: gzip %s: %w", ErrUnavailable, f.path, err)
	}
	defer zr.Close()

	f.logger.Debug("Читаем сжатый файл", zap.String("file", f.path))
	return scanLines(ctx, zr, fn)
}

func (f *File) eachPlain(ctx context.Context, fn func(line string)) error {
	t, err := tail.TailFile(f.path, tail.Config{
		Follow:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	f.logger.Debug("Читаем файл", zap.String("file", f.path))
	for line := range t.Lines {
		if err := ctx.Err(); err != nil {
			go drain(t)
			return err
		}
		if line.Err != nil {
			go drain(t)
			return fmt.Errorf("read %s: %w", f.path, line.Err)
		}
		fn(strings.TrimSuffix(line.Text, "\r"))
	}
	return t.Wait()
}

// drain дочитывает канал, чтобы горутина tail дошла до конца файла и завершилась
func drain(t *tail.Tail) {
	for range t.Lines {
	}
}
