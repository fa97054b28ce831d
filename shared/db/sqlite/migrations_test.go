package sqlite

import (
	"path/filepath"
	"testing"
)

func TestRunMigrations(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	conn := database.DB()

	checks := []struct {
		kind string
		name string
	}{
		{kind: "table", name: "schema_migrations"},
		{kind: "table", name: "rendered_posts"},
		{kind: "index", name: "idx_rendered_posts_rendered_at"},
	}
	for _, c := range checks {
		var count int
		err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", c.kind, c.name).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check %s %s: %v", c.kind, c.name, err)
		}
		if count != 1 {
			t.Errorf("%s %s not created", c.kind, c.name)
		}
	}

	var version int
	var name string
	err := conn.QueryRow("SELECT version, name FROM schema_migrations WHERE version = 1").Scan(&version, &name)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if name != "create_rendered_posts_table" {
		t.Errorf("name = %q, want %q", name, "create_rendered_posts_table")
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	cfg := &SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")}

	database := NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("First Connect() error = %v", err)
	}
	database.Close()

	database = NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("Second Connect() error = %v", err)
	}
	defer database.Close()

	var count int
	if err := database.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("migrations recorded %d times, want %d", count, len(migrations))
	}
}

func TestRenderedPostsPrimaryKey(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	conn := database.DB()

	insert := "INSERT INTO rendered_posts (locale, slug, html, rendered_at) VALUES (?, ?, ?, ?)"
	if _, err := conn.Exec(insert, "en", "hello", "<p>hi</p>", 1); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}
	// Same slug in another locale is a different translation
	if _, err := conn.Exec(insert, "pt", "hello", "<p>olá</p>", 1); err != nil {
		t.Fatalf("Failed to insert other locale: %v", err)
	}
	if _, err := conn.Exec(insert, "en", "hello", "<p>again</p>", 2); err == nil {
		t.Error("duplicate (locale, slug) should violate the primary key")
	}
}
