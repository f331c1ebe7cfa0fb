package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/infrastructure/storage"
)

// Migrator is the part of *migrate.Migrate the runner uses.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests swap it to avoid touching a database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	sourceDir   string
	databaseURI string
	engine      MigrationEngine
	log         *slog.Logger
}

func NewMigration(sourceDir, databaseURI string, engine MigrationEngine, log *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		sourceDir:   sourceDir,
		databaseURI: databaseURI,
		engine:      engine,
		log:         log.With("component", "migration"),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// SourceDir picks the dialect subdirectory of base for a backend scheme.
// ok is false for backends without a SQL schema.
func SourceDir(base, scheme string) (dir string, ok bool) {
	switch scheme {
	case storage.SchemePostgres, storage.SchemePostgreSQL:
		return filepath.Join(base, "postgres"), true
	case storage.SchemeSQLite:
		return filepath.Join(base, "sqlite"), true
	default:
		return "", false
	}
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+filepath.ToSlash(mg.sourceDir), mg.databaseURI)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if cerr := errors.Join(srcErr, dbErr); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close migrations: %w", cerr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	mg.log.Info("migrations applied", "source", mg.sourceDir)
	return nil
}
