package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thitipat-dev/petshop-backend/pkg/migrate"
)

func TestSchemaMigrationContainsCoreTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE products",
		"CREATE TABLE orders",
		"order_number BIGINT NOT NULL UNIQUE",
		"CREATE TABLE order_items",
		"REFERENCES orders (id) ON DELETE CASCADE",
		"CREATE TABLE discount_codes",
		"code TEXT NOT NULL UNIQUE",
		"CREATE TABLE shop_settings",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSeedMigrationMatchesDepositDefaults(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_seed_deposit_settings.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no seed migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, sub := range []string{"deposit_min_amount", "'10000'", "deposit_percentage", "'0.10'", "deposit_enabled", "'true'"} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected seed value %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
