package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_BaseOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  host: dbhost
  port: 5433
  user: u
  password: p
  name: n
jwt:
  secret: s3cret
server:
  port: ":9999"
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", "base")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Host != "dbhost" || cfg.DB.Port != 5433 {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.JWT.Secret != "s3cret" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.Server.Port != ":9999" {
		t.Errorf("server port = %q", cfg.Server.Port)
	}
	if cfg.MQ.URL != "" || cfg.Redis.Addr != "" {
		t.Errorf("mq/redis should default to disabled: %+v %+v", cfg.MQ, cfg.Redis)
	}
}

func TestLoad_EnvFileOverlaysBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  host: basehost
  port: 5432
server:
  port: ":8080"
`)
	writeFile(t, dir, "staging.yaml", `
db:
  host: staginghost
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Host != "staginghost" {
		t.Errorf("db host = %q, want overlay value", cfg.DB.Host)
	}
	if cfg.DB.Port != 5432 || cfg.Server.Port != ":8080" {
		t.Errorf("base values lost: %+v %+v", cfg.DB, cfg.Server)
	}
}

func TestLoad_EnvVarsWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  host: filehost
jwt:
  secret: filesecret
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", "base")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("JWT_SECRET", "envsecret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Host != "envhost" {
		t.Errorf("db host = %q, want env override", cfg.DB.Host)
	}
	if cfg.JWT.Secret != "envsecret" {
		t.Errorf("jwt secret = %q, want env override", cfg.JWT.Secret)
	}
}

func TestLoad_MissingBaseFails(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("APP_ENV", "base")

	if _, err := Load(); err == nil {
		t.Error("expected error when base.yaml is missing")
	}
}
