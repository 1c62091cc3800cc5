package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM game_state WHERE state_key = ?",
			want:  "SELECT * FROM game_state WHERE state_key = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO attempts (game, item_key, is_correct) VALUES (?, ?, ?)",
			want:  "INSERT INTO attempts (game, item_key, is_correct) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectDrivers(t *testing.T) {
	tests := []struct {
		dialect Dialect
		driver  string
		subdir  string
		lastID  bool
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite", true},
		{NewPostgresDialect(), "postgres", "postgres", false},
		{NewMySQLDialect(), "mysql", "mysql", true},
	}

	for _, tt := range tests {
		if got := tt.dialect.DriverName(); got != tt.driver {
			t.Errorf("DriverName = %q, want %q", got, tt.driver)
		}
		if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
			t.Errorf("MigrationsSubdir = %q, want %q", got, tt.subdir)
		}
		if got := tt.dialect.SupportsLastInsertId(); got != tt.lastID {
			t.Errorf("%s SupportsLastInsertId = %v, want %v", tt.driver, got, tt.lastID)
		}
	}
}

func TestSQLiteRewriteIsIdentity(t *testing.T) {
	d := NewSQLiteDialect()
	query := "SELECT * FROM game_state WHERE state_key = ?"
	if got := d.RewriteQuery(query); got != query {
		t.Errorf("sqlite must not rewrite placeholders, got %q", got)
	}
}

func TestPostgresRewriteNumbers(t *testing.T) {
	d := NewPostgresDialect()
	got := d.RewriteQuery("UPDATE game_state SET state_value = ? WHERE state_key = ?")
	want := "UPDATE game_state SET state_value = $1 WHERE state_key = $2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
