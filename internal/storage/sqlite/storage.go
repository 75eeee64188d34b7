// Package sqlite is the embedded single-file store used by default.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/repository"
)

const dsnOptions = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Storage acts as repository facade backed by a SQLite file.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New opens the database file, migrates the schema and limits the pool to a single writer.
func New(path string, logger *slog.Logger) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path must be provided")
	}

	if !strings.HasPrefix(path, "file:") && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return storage, nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + dsnOptions
	}
	return path + "?" + dsnOptions
}

func (s *Storage) initSchema() error {
	models := []any{
		&userRecord{},
		&pointRecord{},
		&campaignRecord{},
		&rewardRecord{},
	}
	for _, m := range models {
		if err := s.db.AutoMigrate(m); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close releases database resources.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{db: s.db}
}

func (s *Storage) Points() repository.PointRepository {
	return &pointRepository{db: s.db}
}

func (s *Storage) Rankings() repository.RankingRepository {
	return &rankingRepository{db: s.db}
}

func (s *Storage) Campaigns() repository.CampaignRepository {
	return &campaignRepository{db: s.db}
}

func (s *Storage) Rewards() repository.RewardRepository {
	return &rewardRepository{db: s.db}
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainErrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainErrors.ErrAlreadyExists
	default:
		return err
	}
}

var _ repository.Factory = (*Storage)(nil)
