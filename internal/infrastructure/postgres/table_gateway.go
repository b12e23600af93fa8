// Package postgres implements the table contract directly against a
// Postgres database, for self-hosted deployments that skip the REST layer.
// The schema belongs to the backend; nothing here migrates it.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// Open connects to the backend database.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// TableGateway implements domain.TableAPI over GORM.
type TableGateway struct {
	db *gorm.DB
}

// NewTableGateway creates the gateway.
func NewTableGateway(db *gorm.DB) domain.TableAPI {
	return &TableGateway{db: db}
}

// Select implements domain.TableAPI.
func (g *TableGateway) Select(ctx context.Context, table string, columns []string, filters domain.Filters) ([]map[string]any, error) {
	var rows []map[string]any
	tx := g.db.WithContext(ctx).Table(table)
	if len(columns) > 0 {
		tx = tx.Select(strings.Join(columns, ", "))
	}
	if len(filters) > 0 {
		tx = tx.Where(map[string]any(filters))
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert implements domain.TableAPI.
func (g *TableGateway) Insert(ctx context.Context, table string, row map[string]any) error {
	return g.db.WithContext(ctx).Table(table).Create(row).Error
}

// Update implements domain.TableAPI.
func (g *TableGateway) Update(ctx context.Context, table string, row map[string]any, filters domain.Filters) error {
	return g.db.WithContext(ctx).Table(table).
		Where(map[string]any(filters)).
		Updates(row).Error
}

// Delete implements domain.TableAPI.
func (g *TableGateway) Delete(ctx context.Context, table string, filters domain.Filters) error {
	return g.db.WithContext(ctx).Table(table).
		Where(map[string]any(filters)).
		Delete(nil).Error
}

var _ domain.TableAPI = (*TableGateway)(nil)
