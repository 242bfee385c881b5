package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
// The database is named after the test so parallel tests do not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.PasswordResetToken{},
		&entity.Supplier{},
		&entity.Customer{},
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.IdempotencyKey{},
	))

	return db
}
