// Package app wires configuration to the storage medium, theme store and
// catalog shared by the server and the CLI.
package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/catalog"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/db"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/kv"
	"github.com/codr1/themesmith/internal/store"
)

type Services struct {
	Config  *config.Config
	Storage kv.Storage
	Store   *store.Store
	Catalog *catalog.Catalog

	// DB is nil for the memory driver.
	DB *db.DB
}

// Open builds the services for cfg. Close releases the database, if any.
func Open(cfg *config.Config) (*Services, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	svc := &Services{Config: cfg, Catalog: cat}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		database, err := db.NewFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		svc.DB = database
		svc.Storage = db.NewKV(database)
		log.Info().Str("filename", cfg.Database.Filename).Msg("Theme store backed by sqlite")
	case config.DriverMemory:
		svc.Storage = kv.NewMemory()
		log.Info().Msg("Theme store backed by memory")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	svc.Store = store.New(svc.Storage)
	return svc, nil
}

// DefaultHarmony is the configured harmony, complementary when unset.
func (s *Services) DefaultHarmony() harmony.Kind {
	kind, _ := harmony.ParseKind(s.Config.Generator.DefaultHarmony)
	return kind
}

func (s *Services) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
