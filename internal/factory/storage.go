// Package factory constructs configured infrastructure dependencies.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kayfabe/kayfabe-booker/internal/config"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/docstore/postgres"
	"github.com/kayfabe/kayfabe-booker/internal/docstore/sqlite"
)

// NewStore returns the document store selected by cfg.DBDriver.
func NewStore(cfg *config.Config, log zerolog.Logger) (docstore.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		st, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("document store ready")
		return st, nil
	case "postgres":
		st, err := postgres.New(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", "postgres").Msg("document store ready")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
