package config

import (
	"errors"
	"fmt"
	"time"
)

// Виды источника лога
const (
	SourceSFTP = "sftp"
	SourceFile = "file"
)

// ErrInvalid: конфигурация не прошла проверку
var ErrInvalid = errors.New("invalid config")

// RemoteConfig: параметры подключения к удалённому хосту с логом.
// Обязателен Password или KeyFile.
// При пустом KnownHostsFile используется ~/.ssh/known_hosts.
type RemoteConfig struct {
	Host                string        `mapstructure:"Host"`
	Port                int           `mapstructure:"Port"`
	User                string        `mapstructure:"User"`
	Password            string        `mapstructure:"Password"`
	KeyFile             string        `mapstructure:"KeyFile"`
	KnownHostsFile      string        `mapstructure:"KnownHostsFile"`
	InsecureSkipHostKey bool          `mapstructure:"InsecureSkipHostKey"`
	RemotePath          string        `mapstructure:"RemotePath"` // путь к .gz файлу на сервере
	DialTimeout         time.Duration `mapstructure:"DialTimeout"`
}

// SourceConfig выбирает, откуда читать лог: "sftp" или "file"
type SourceConfig struct {
	Kind string `mapstructure:"Kind"`
	Path string `mapstructure:"Path"` // для Kind=file
}

// HTTPConfig: настройки HTTP-сервера отчётов
type HTTPConfig struct {
	Addr            string        `mapstructure:"Addr"`
	ReadTimeout     time.Duration `mapstructure:"ReadTimeout"`
	WriteTimeout    time.Duration `mapstructure:"WriteTimeout"`
	IdleTimeout     time.Duration `mapstructure:"IdleTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"ShutdownTimeout"`
}

// LoggingConfig содержит настройки логирования и интеграции с Sentry
type LoggingConfig struct {
	Level        string `mapstructure:"Level"`        // debug, info, warn, error
	LogFile      string `mapstructure:"LogFile"`      // путь к файлу логов
	SentryDSN    string `mapstructure:"SentryDSN"`    // DSN для Sentry
	EnableSentry bool   `mapstructure:"EnableSentry"` // включить отправку ошибок в Sentry
}

// Config описывает основные настройки сервиса.
// Загружается из YAML, любое поле можно переопределить переменной окружения
// LOGSUMMARY_<СЕКЦИЯ>_<ПОЛЕ>, например LOGSUMMARY_REMOTE_HOST.
type Config struct {
	Source  SourceConfig  `mapstructure:"Source"`
	Remote  RemoteConfig  `mapstructure:"Remote"`
	HTTP    HTTPConfig    `mapstructure:"HTTP"`
	Logging LoggingConfig `mapstructure:"Logging"`
}

// Validate проверяет обязательные поля конфигурации
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceSFTP:
		if c.Remote.Host == "" {
			return fmt.Errorf("%w: Remote.Host must not be empty", ErrInvalid)
		}
		if c.Remote.Port <= 0 || c.Remote.Port > 65535 {
			return fmt.Errorf("%w: Remote.Port out of range: %d", ErrInvalid, c.Remote.Port)
		}
		if c.Remote.User == "" {
			return fmt.Errorf("%w: Remote.User must not be empty", ErrInvalid)
		}
		if c.Remote.Password == "" && c.Remote.KeyFile == "" {
			return fmt.Errorf("%w: Remote.Password or Remote.KeyFile required", ErrInvalid)
		}
		if c.Remote.RemotePath == "" {
			return fmt.Errorf("%w: Remote.RemotePath must not be empty", ErrInvalid)
		}
		if c.Remote.DialTimeout <= 0 {
			return fmt.Errorf("%w: Remote.DialTimeout must be positive", ErrInvalid)
		}
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: Source.Path must not be empty", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown Source.Kind %q", ErrInvalid, c.Source.Kind)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: HTTP.Addr must not be empty", ErrInvalid)
	}
	return nil
}
