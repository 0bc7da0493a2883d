package source

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"logsummary/internal/config"
)

// SFTP скачивает сжатый лог с удалённого хоста.
// Параметры подключения передаются при создании, глобального состояния нет.
type SFTP struct {
	cfg    config.RemoteConfig
	logger *zap.Logger
}

func NewSFTP(cfg config.RemoteConfig, logger *zap.Logger) *SFTP {
	return &SFTP{cfg: cfg, logger: logger}
}

func (s *SFTP) Each(ctx context.Context, fn func(line string)) error {
	s.logger.Info("Устанавливаем соединение", zap.String("host", s.cfg.Host), zap.Int("port", s.cfg.Port))
	client, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: ssh %s: %w", ErrUnavailable, s.cfg.Host, err)
	}
	defer client.Close()
	// Отмена контекста рвёт соединение, иначе чтение может висеть бесконечно
	stop := context.AfterFunc(ctx, func() { _ = client.Close() })
	defer stop()

	s.logger.Info("Соединение установлено, открываем SFTP-канал")
	sc, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("%w: sftp channel: %w", ErrUnavailable, err)
	}
	defer sc.Close()

	remote, err := sc.Open(s.cfg.RemotePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrUnavailable, s.cfg.RemotePath, err)
	}
	defer remote.Close()

	zr, err := gzip.NewReader(remote)
	if err != nil {
		return fmt.Errorf("%w: gzip %s: %w", ErrUnavailable, s.cfg.RemotePath, err)
	}
	defer zr.Close()

	s.logger.Info("SFTP-канал открыт, читаем файл", zap.String("path", s.cfg.RemotePath))
	if err := scanLines(ctx, zr, fn); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// dial подключается по SSH; и TCP-соединение, и рукопожатие ограничены DialTimeout
func (s *SFTP) dial(ctx context.Context) (*ssh.Client, error) {
	auth, err := s.authMethods()
	if err != nil {
		return nil, err
	}
	hostKey, err := s.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            s.cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         s.cfg.DialTimeout,
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.DialTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	_ = conn.SetDeadline(time.Now().Add(s.cfg.DialTimeout))
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}

func (s *SFTP) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if s.cfg.KeyFile != "" {
		pem, err := os.ReadFile(s.cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("parse key %s: %w", s.cfg.KeyFile, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if s.cfg.Password != "" {
		methods = append(methods, ssh.Password(s.cfg.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no ssh auth method configured")
	}
	return methods, nil
}

func (s *SFTP) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if s.cfg.InsecureSkipHostKey {
		s.logger.Warn("Проверка ключа хоста отключена", zap.String("host", s.cfg.Host))
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := s.cfg.KnownHostsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("known_hosts: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("known_hosts %s: %w", path, err)
	}
	return cb, nil
}
