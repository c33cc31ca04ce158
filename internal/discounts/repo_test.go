package discounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

func setupDiscountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
CREATE TABLE IF NOT EXISTS discount_codes (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL,
  value REAL NOT NULL,
  min_amount REAL,
  valid_from DATETIME,
  valid_until DATETIME,
  usage_limit INTEGER,
  usage_count INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)

	return db
}

func seedCode(t *testing.T, db *gorm.DB, record *models.DiscountCode) {
	t.Helper()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	require.NoError(t, db.Create(record).Error)
}

func TestIncrementUsage_UnlimitedCode(t *testing.T) {
	db := setupDiscountsTestDB(t)
	repo := NewRepository(db)
	seedCode(t, db, &models.DiscountCode{Code: "FOREVER", Type: enums.DiscountTypeFixed, Value: 10, IsActive: true})

	for i := 0; i < 3; i++ {
		ok, err := repo.IncrementUsage(context.Background(), "FOREVER")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	record, err := repo.FindByCode(context.Background(), "FOREVER")
	require.NoError(t, err)
	assert.Equal(t, 3, record.UsageCount)
}

func TestIncrementUsage_StopsAtLimit(t *testing.T) {
	db := setupDiscountsTestDB(t)
	repo := NewRepository(db)
	limit := 2
	seedCode(t, db, &models.DiscountCode{Code: "TWICE", Type: enums.DiscountTypeFixed, Value: 10, UsageLimit: &limit, IsActive: true})

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementUsage(context.Background(), "TWICE")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.IncrementUsage(context.Background(), "TWICE")
	require.NoError(t, err)
	assert.False(t, ok, "third redemption must fail once the limit is reached")

	record, err := repo.FindByCode(context.Background(), "TWICE")
	require.NoError(t, err)
	assert.Equal(t, 2, record.UsageCount)
}

func TestIncrementUsage_UnknownCode(t *testing.T) {
	db := setupDiscountsTestDB(t)
	repo := NewRepository(db)

	ok, err := repo.IncrementUsage(context.Background(), "GHOST")
	require.NoError(t, err)
	assert.False(t, ok)
}
