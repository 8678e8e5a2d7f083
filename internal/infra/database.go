package infra

import (
	"fmt"

	"farmavita/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, then applies the idempotent SQL patches GORM cannot express
// (partial unique indexes, sequences).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

// RunMigrations creates/updates the schema and applies the SQL patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Departamento{},
		&model.Municipio{},
		&model.Genero{},
		&model.EstadoCivil{},
		&model.Turno{},
		&model.Categoria{},
		&model.Proveedor{},
		&model.ContactoProveedor{},
		&model.Inventario{},
		&model.Producto{},
		&model.InventarioProducto{},
		&model.Persona{},
		&model.Telefono{},
		&model.Direccion{},
		&model.Sucursal{},
		&model.Caja{},
		&model.AperturaCaja{},
		&model.Factura{},
		&model.FacturaDetalle{},
		&model.Traslado{},
		&model.TrasladoDetalle{},
		&model.OrdenRestablecimiento{},
		&model.OrdenDetalle{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle:
// the invoice correlative sequence and the partial unique indexes that close
// the check-then-write race on active cash sessions. Each statement uses
// IF NOT EXISTS semantics so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS facturas_numero_seq START 1`,

		// At most one active session per caja.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_apertura_activa_caja') THEN
		    CREATE UNIQUE INDEX uni_apertura_activa_caja
		        ON aperturas_caja (caja_id)
		        WHERE activa = true;
		  END IF;
		END $$`,

		// At most one active session per persona.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_apertura_activa_persona') THEN
		    CREATE UNIQUE INDEX uni_apertura_activa_persona
		        ON aperturas_caja (persona_id)
		        WHERE activa = true;
		  END IF;
		END $$`,

		// Low-stock scan used by the alert worker.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventario_stock_bajo') THEN
		    CREATE INDEX idx_inventario_stock_bajo
		        ON inventario_productos (inventario_id)
		        WHERE cantidad < stock_minimo;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
