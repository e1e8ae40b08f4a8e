package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	// TranslateError turns SQLSTATE 23505 into gorm.ErrDuplicatedKey, which
	// the services branch on to report uniqueness conflicts as 400s.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Shared with the
// integration tests so containerized databases get the exact same schema.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Categoria{},
		&model.Supermercado{},
		&model.Producto{},
		&model.Oferta{},
		&model.ReporteOferta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running on an already
// patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the cheapest-valid-offer subquery of the
		// product listing and the validas=true default scope.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ofertas_validas_precio') THEN
		    CREATE INDEX idx_ofertas_validas_precio
		        ON ofertas (producto_id, precio_oferta)
		        WHERE valida;
		  END IF;
		END $$`,
		// Trigram index for ILIKE search over product names; skipped silently
		// when the role cannot install pg_trgm.
		`DO $$ BEGIN
		  CREATE EXTENSION IF NOT EXISTS pg_trgm;
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_productos_nombre_trgm') THEN
		    CREATE INDEX idx_productos_nombre_trgm
		        ON productos USING gin (nombre gin_trgm_ops);
		  END IF;
		EXCEPTION WHEN insufficient_privilege THEN
		  NULL;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
