package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix: префикс переменных окружения
const EnvPrefix = "LOGSUMMARY"

// defaults перечисляет все ключи: viper подхватывает переменные окружения
// при Unmarshal только для известных ему ключей
var defaults = map[string]any{
	"Source.Kind":                SourceSFTP,
	"Source.Path":                "",
	"Remote.Host":                "",
	"Remote.Port":                22,
	"Remote.User":                "",
	"Remote.Password":            "",
	"Remote.KeyFile":             "",
	"Remote.KnownHostsFile":      "",
	"Remote.InsecureSkipHostKey": false,
	"Remote.RemotePath":          "",
	"Remote.DialTimeout":         10 * time.Second,
	"HTTP.Addr":                  ":8080",
	"HTTP.ReadTimeout":           30 * time.Second,
	"HTTP.WriteTimeout":          30 * time.Second,
	"HTTP.IdleTimeout":           120 * time.Second,
	"HTTP.ShutdownTimeout":       5 * time.Second,
	"Logging.Level":              "info",
	"Logging.LogFile":            "",
	"Logging.SentryDSN":          "",
	"Logging.EnableSentry":       false,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig читает и парсит конфиг из YAML-файла по указанному пути.
// Шаги:
// 1. Чтение сырого файла
// 2. Очистка данных: удаление BOM, замена табуляций
// 3. Парсинг YAML и наложение переменных окружения
// 4. Валидация обязательных полей
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(sanitize(raw))); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default возвращает конфигурацию из значений по умолчанию и окружения, без файла.
// Валидация не выполняется: вызывающий обычно дозаполняет Source.
func Default() (*Config, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// sanitize удаляет BOM и табуляции
func sanitize(data []byte) []byte {
	// Удаляем UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	// Заменяем табы на два пробела, чтобы YAML-парсер не жаловался
	data = bytes.ReplaceAll(data, []byte("\t"), []byte("  "))
	return data
}
