package app

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/trimmer/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/trimmer/internal/config"
	"github.com/vadimbarashkov/trimmer/internal/entity"
	"github.com/vadimbarashkov/trimmer/migrations"
	"github.com/vadimbarashkov/trimmer/pkg/postgres"
	"github.com/vadimbarashkov/trimmer/pkg/sqlite"

	pgrepo "github.com/vadimbarashkov/trimmer/internal/adapter/repository/postgres"
	sqliterepo "github.com/vadimbarashkov/trimmer/internal/adapter/repository/sqlite"
)

// Store is the link store as seen by the link use case and the click recorder.
type Store interface {
	Save(ctx context.Context, link *entity.Link) (*entity.Link, error)
	FindByKey(ctx context.Context, key string) (*entity.Link, error)
	FindByID(ctx context.Context, id string) (*entity.Link, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error)
	UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error)
	ClickStats(ctx context.Context, linkID string, recentLimit int) (*entity.LinkStats, error)
	SaveClick(ctx context.Context, event entity.ClickEvent) error
	IncrementClick(ctx context.Context, linkID string) error
}

// OpenStore opens the store selected by cfg.Storage.Driver and brings its
// schema up to date. The returned close func releases the connection pool.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	const op = "app.OpenStore"

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dsn := cfg.Postgres.DSN()

		db, err := postgres.New(
			ctx,
			dsn,
			postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
			postgres.WithConnectTimeout(cfg.Postgres.ConnectTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := postgres.RunMigrations(migrations.Postgres, "postgres", dsn); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return pgrepo.NewLinkRepository(db), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := sqlite.RunMigrations(migrations.SQLite, "sqlite", cfg.SQLite.Path); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return sqliterepo.NewLinkRepository(db), db.Close, nil

	case config.DriverMemory:
		return memory.NewLinkRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}
}

// Migrate applies every pending migration, or reverts the latest one when
// down is set. The memory driver has no schema.
func Migrate(cfg *config.Config, down bool) error {
	const op = "app.Migrate"

	var err error

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if down {
			err = postgres.RollbackMigration(migrations.Postgres, "postgres", cfg.Postgres.DSN())
		} else {
			err = postgres.RunMigrations(migrations.Postgres, "postgres", cfg.Postgres.DSN())
		}
	case config.DriverSQLite:
		if down {
			err = sqlite.RollbackMigration(migrations.SQLite, "sqlite", cfg.SQLite.Path)
		} else {
			err = sqlite.RunMigrations(migrations.SQLite, "sqlite", cfg.SQLite.Path)
		}
	case config.DriverMemory:
		return nil
	default:
		return fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
