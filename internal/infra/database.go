package infra

import (
	"fmt"

	"github.com/SttarkMax/MaxControlOK-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the quote numbering sequence and a couple of partial indexes).
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

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Empresa{},
		&model.Fornecedor{},
		&model.Cliente{},
		&model.Produto{},
		&model.Orcamento{},
		&model.OrcamentoItem{},
		&model.ContaPagar{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle:
// the sequence backing sequential quote numbers and supporting indexes. Each
// statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Sequential, gap-tolerant quote numbering. nextval is atomic, so
		// concurrent quote creation never produces duplicate numbers.
		`CREATE SEQUENCE IF NOT EXISTS orcamentos_numero_seq START 1`,
		// The overdue-payables cron only ever scans unpaid rows.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_contas_pagar_pendentes') THEN
		    CREATE INDEX idx_contas_pagar_pendentes
		        ON contas_pagar (vencimento)
		        WHERE pago = false;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orcamentos_cliente') THEN
		    CREATE INDEX idx_orcamentos_cliente ON orcamentos (cliente_id);
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
