package config

import (
	"os"
	"path/filepath"
	"testing"

	"apu/database"
)

func TestFromLookupDefaults(t *testing.T) {
	t.Parallel()

	cfg := FromLookup(func(string) string { return "" })
	want := Config{
		DB: database.Config{
			Type: "mysql",
			Host: "localhost",
			Port: 3306,
			User: "root",
		},
		Dialect:  "excel",
		Encoding: "utf-8",
		Workers:  4,
	}
	if cfg != want {
		t.Fatalf("unexpected config:\n got: %+v\nwant: %+v", cfg, want)
	}
}

func TestFromLookupValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"DB_TYPE":      "postgres",
		"DB_HOST":      "pg.internal",
		"DB_USER":      "reporter",
		"DB_PASSWORD":  "secret",
		"DB_NAME":      "sales",
		"DB_SSLMODE":   "require",
		"CSV_DIALECT":  "excel-tab",
		"CSV_ENCODING": "iso-8859-1",
		"WORKERS":      "not-a-number",
	}
	cfg := FromLookup(func(k string) string { return env[k] })

	if cfg.DB.Port != 5432 {
		t.Fatalf("expected postgres default port, got %d", cfg.DB.Port)
	}
	if cfg.DB.Host != "pg.internal" || cfg.DB.User != "reporter" || cfg.DB.Password != "secret" ||
		cfg.DB.Database != "sales" || cfg.DB.SSLMode != "require" {
		t.Fatalf("unexpected db config %+v", cfg.DB)
	}
	if cfg.Dialect != "excel-tab" || cfg.Encoding != "iso-8859-1" {
		t.Fatalf("unexpected csv settings %q %q", cfg.Dialect, cfg.Encoding)
	}
	if cfg.Workers != 4 {
		t.Fatalf("invalid WORKERS should keep the default, got %d", cfg.Workers)
	}
}

// Not parallel: uses t.Setenv.
func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "DB_TYPE=sqlite\nDB_NAME=/var/lib/apu/data.db\nWORKERS=8\nDB_HOST=from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DB_HOST", "from-env")

	cfg := Load(path)
	if cfg.DB.Type != "sqlite" || cfg.DB.Database != "/var/lib/apu/data.db" {
		t.Fatalf("file values not applied: %+v", cfg.DB)
	}
	if cfg.DB.Port != 0 {
		t.Fatalf("sqlite has no default port, got %d", cfg.DB.Port)
	}
	if cfg.Workers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.DB.Host != "from-env" {
		t.Fatalf("environment should win over file, got %q", cfg.DB.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DB_NAME", "fallback")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.DB.Database != "fallback" {
		t.Fatalf("expected environment values, got %+v", cfg.DB)
	}
}
