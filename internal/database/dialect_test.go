package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("RowLockSuffix", func(t *testing.T) {
		if got := dialect.RowLockSuffix(); got != "" {
			t.Errorf("RowLockSuffix() = %q, want empty (single-writer engine)", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM words WHERE word = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", got)
		}
	})

	t.Run("InsertIgnoreQuery", func(t *testing.T) {
		got := dialect.InsertIgnoreQuery("words", "word")
		expected := "INSERT OR IGNORE INTO words (word) VALUES (?)"
		if got != expected {
			t.Errorf("InsertIgnoreQuery() = %v, want %v", got, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("RowLockSuffix", func(t *testing.T) {
		if got := dialect.RowLockSuffix(); got != " FOR UPDATE" {
			t.Errorf("RowLockSuffix() = %q, want \" FOR UPDATE\"", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "INSERT INTO prompts (description, rule) VALUES (?, ?)"
		expected := "INSERT INTO prompts (description, rule) VALUES ($1, $2)"
		if got := dialect.RewriteQuery(query); got != expected {
			t.Errorf("RewriteQuery() = %v, want %v", got, expected)
		}
	})

	t.Run("InsertIgnoreQuery", func(t *testing.T) {
		got := dialect.InsertIgnoreQuery("words", "word")
		expected := "INSERT INTO words (word) VALUES (?) ON CONFLICT (word) DO NOTHING"
		if got != expected {
			t.Errorf("InsertIgnoreQuery() = %v, want %v", got, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("RowLockSuffix", func(t *testing.T) {
		if got := dialect.RowLockSuffix(); got != " FOR UPDATE" {
			t.Errorf("RowLockSuffix() = %q, want \" FOR UPDATE\"", got)
		}
	})

	t.Run("RandomFunc", func(t *testing.T) {
		if got := dialect.RandomFunc(); got != "RAND()" {
			t.Errorf("RandomFunc() = %v, want RAND()", got)
		}
	})

	t.Run("InsertIgnoreQuery", func(t *testing.T) {
		got := dialect.InsertIgnoreQuery("words", "word")
		expected := "INSERT IGNORE INTO words (word) VALUES (?)"
		if got != expected {
			t.Errorf("InsertIgnoreQuery() = %v, want %v", got, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want mysql", got)
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT COUNT(*) FROM words",
			expected: "SELECT COUNT(*) FROM words",
		},
		{
			name:     "single placeholder",
			query:    "SELECT id FROM words WHERE word = ?",
			expected: "SELECT id FROM words WHERE word = $1",
		},
		{
			name:     "multiple placeholders numbered in order",
			query:    "UPDATE prompts SET valid_words_count = ? WHERE id = ?",
			expected: "UPDATE prompts SET valid_words_count = $1 WHERE id = $2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", got, tt.expected)
			}
		})
	}
}
