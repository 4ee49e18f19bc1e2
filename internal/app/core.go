package app

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MrSnakeDoc/shorty/internal/config"
	"github.com/MrSnakeDoc/shorty/internal/index"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/metrics"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
	"github.com/MrSnakeDoc/shorty/internal/sources/reserved"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

// Core is the part of shorty shared by the server and the one-shot commands:
// the database, the reserved codes and the allocator on top of them.
type Core struct {
	DB        *gorm.DB
	Links     *sqlstore.LinkStore
	Reserved  *index.ReservedIndex
	Allocator *shortener.Allocator
	Metrics   *metrics.Metrics
}

// NewCore opens and migrates the database, loads the reserved codes once and
// builds the allocator.
func NewCore(cfg *config.Config, log logger.Logger) (*Core, error) {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.Migrate(db); err != nil {
		_ = sqlstore.Close(db)
		return nil, err
	}

	codes, err := reserved.NewLoader(cfg.ReservedFile).Load()
	if err != nil {
		_ = sqlstore.Close(db)
		return nil, err
	}
	idx := index.NewReservedIndex(codes...)

	gen, err := NewGenerator(cfg)
	if err != nil {
		_ = sqlstore.Close(db)
		return nil, err
	}

	m := metrics.New()
	links := sqlstore.NewLinkStore(db)

	return &Core{
		DB:       db,
		Links:    links,
		Reserved: idx,
		Allocator: shortener.NewAllocator(links, gen, log, shortener.Options{
			MaxAttempts: cfg.CodeMaxAttempts,
			Reserved:    idx,
			Metrics:     m,
		}),
		Metrics: m,
	}, nil
}

// Close releases the database pool.
func (c *Core) Close() error {
	return sqlstore.Close(c.DB)
}

// OpenDatabase connects to the configured link store without migrating it.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	return sqlstore.Open(sqlstore.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnMaxLife:  cfg.DBConnMaxLife,
	})
}

// NewGenerator picks the short code generator named in the config.
func NewGenerator(cfg *config.Config) (shortener.Generator, error) {
	switch cfg.CodeGenerator {
	case "random":
		return shortener.NewRandomGenerator(cfg.CodeLength), nil
	case "shortid", "":
		return shortener.NewShortIDGenerator(uint8(cfg.ShortIDWorker), uint64(time.Now().UnixNano()))
	default:
		return nil, fmt.Errorf("unknown code generator %q", cfg.CodeGenerator)
	}
}
