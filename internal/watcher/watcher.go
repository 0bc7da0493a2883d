package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"logsummary/internal/config"
)

// ConfigWatcher держит актуальную конфигурацию и перечитывает файл при изменении.
// Если новый файл не загружается или не проходит проверку, остаётся прежняя конфигурация.
type ConfigWatcher struct {
	path   string
	logger *zap.Logger

	mu  sync.RWMutex
	cfg *config.Config
}

func NewConfigWatcher(path string, initial *config.Config, logger *zap.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:   path,
		cfg:    initial,
		logger: logger,
	}
}

// Current возвращает текущую конфигурацию. Возвращённое значение не меняется,
// при перезагрузке подставляется новый указатель.
func (w *ConfigWatcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// Start начинает слежение и возвращается сразу; слежение идёт до отмены ctx.
// Следим за каталогом, а не за файлом: редакторы часто сохраняют через rename,
// и наблюдатель на самом файле после этого теряется.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("создание watcher-а конфига: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.loop(ctx, fw)
	return nil
}

func (w *ConfigWatcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()
	name := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != name || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Ошибка watcher-а конфига", zap.Error(err))
		}
	}
}

func (w *ConfigWatcher) reload() {
	w.logger.Info("Конфиг изменился, перечитываем", zap.String("path", w.path))
	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		w.logger.Error("Ошибка загрузки конфига, оставляем прежний", zap.Error(err))
		return
	}
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
}
