package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestSeedMigrationCoversDemoCatalog(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var seed string
	for _, e := range entries {
		if strings.Contains(e.Name(), "seed_demo_catalog") {
			b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
			if err != nil {
				t.Fatalf("read seed migration: %v", err)
			}
			seed = string(b)
		}
	}
	if seed == "" {
		t.Fatal("seed_demo_catalog migration not found")
	}

	for _, slug := range []string{"gift-box-rose", "summer-set", "couples-pack", "kids-surprise"} {
		if !strings.Contains(seed, slug) {
			t.Fatalf("seed migration missing product %q", slug)
		}
	}
	for _, category := range []string{"gift-boxes", "seasonal", "couples", "kids"} {
		if !strings.Contains(seed, category) {
			t.Fatalf("seed migration missing category %q", category)
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Wishlist Table!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, "_add_wishlist_table.sql") {
		t.Fatalf("unexpected filename %q", name)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration fails validation: %v", err)
	}
}
