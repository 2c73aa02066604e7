package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/jakoblorz/go-panelcart/internal/config"
	"github.com/jakoblorz/go-panelcart/internal/filesystem"
	"github.com/jakoblorz/go-panelcart/internal/kv"
	boltkv "github.com/jakoblorz/go-panelcart/internal/kv/bolt"
	sqlitekv "github.com/jakoblorz/go-panelcart/internal/kv/sqlite"
	"github.com/jakoblorz/go-panelcart/internal/logging"
	"go.uber.org/zap"
)

const (
	boltFileName   = "panelcart.db"
	sqliteFileName = "panelcart.sqlite"
)

// session holds the storage shared by every command of one invocation.
// It is opened by the root command's pre-run hook.
type session struct {
	fs     filesystem.FileSystem
	cfg    *config.Config
	logger *zap.Logger

	backend kv.Backend
	closer  io.Closer
	store   *cart.Store

	// opener replaces openBackend when set
	opener func() (kv.Backend, io.Closer, error)
}

func newSession(fs filesystem.FileSystem, cfg *config.Config, logger *zap.Logger) *session {
	return &session{
		fs:     fs,
		cfg:    cfg,
		logger: logging.OrNop(logger),
	}
}

func (s *session) open() error {
	if s.store != nil {
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	open := func() (kv.Backend, io.Closer, error) { return openBackend(s.fs, s.cfg) }
	if s.opener != nil {
		open = s.opener
	}

	backend, closer, err := open()
	if err != nil {
		return err
	}
	s.backend = backend
	s.closer = closer
	s.store = cart.New(backend, cart.WithLogger(s.logger))

	active, err := cart.ActiveProject(backend)
	if err != nil {
		_ = s.close()
		return err
	}
	if active != "" {
		s.store.SetProjectCode(active)
	}

	s.logger.Debug("session opened",
		zap.String("backend", s.cfg.Backend),
		zap.String("data_dir", s.cfg.DataDir),
		zap.String("project", active))
	return nil
}

func (s *session) close() error {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

// openBackend opens the configured kv backend. The closer is nil for
// backends that hold no resources.
func openBackend(fs filesystem.FileSystem, cfg *config.Config) (kv.Backend, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), nil, nil
	case config.BackendFile:
		return kv.NewFile(fs, cfg.DataDir), nil, nil
	case config.BackendBolt:
		if err := fs.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := boltkv.Open(filepath.Join(cfg.DataDir, boltFileName))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.BackendSQLite:
		if err := fs.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlitekv.Open(filepath.Join(cfg.DataDir, sqliteFileName))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

// panelIndex converts a 1-based panel number from the command line.
func panelIndex(arg string) (int, error) {
	n, err := parsePositive(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid panel number %q: must be 1 or greater", arg)
	}
	return n - 1, nil
}

// describeIndexError rewrites store index errors with 1-based numbers.
func describeIndexError(err error) error {
	var indexErr *cart.IndexError
	if !errors.As(err, &indexErr) {
		return err
	}
	if indexErr.Len == 0 {
		return fmt.Errorf("no panel #%d: the cart is empty", indexErr.Index+1)
	}
	return fmt.Errorf("no panel #%d: the cart has panels 1-%d", indexErr.Index+1, indexErr.Len)
}

func parsePositive(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be 1 or greater, got %d", n)
	}
	return n, nil
}
