package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg := Load()

	// 检查默认值
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR default ':8080', got '%s'", cfg.HTTP.Addr)
	}

	if !cfg.DBEnabled {
		t.Error("Expected DB_ENABLED default true")
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected DB_HOST default 'localhost', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}

	if cfg.Database.Database != "backoffice" {
		t.Errorf("Expected DB_NAME default 'backoffice', got '%s'", cfg.Database.Database)
	}

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}

	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("Expected TOKEN_TTL_HOURS default 24, got %d", cfg.Auth.TokenTTLHours)
	}

	if !cfg.Auth.SeedAdmin {
		t.Error("Expected SEED_ADMIN default true")
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// 设置环境变量
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_ENABLED", "false")
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_PORT", "15432")
	os.Setenv("TOKEN_TTL_HOURS", "2")
	os.Setenv("SEED_ADMIN", "false")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("Expected HTTP_ADDR ':9090', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.DBEnabled {
		t.Error("Expected DB_ENABLED false")
	}
	if cfg.Database.Host != "test-host" {
		t.Errorf("Expected DB_HOST 'test-host', got '%s'", cfg.Database.Host)
	}
	if cfg.Database.Port != 15432 {
		t.Errorf("Expected DB_PORT 15432, got %d", cfg.Database.Port)
	}
	if cfg.Auth.TokenTTLHours != 2 {
		t.Errorf("Expected TOKEN_TTL_HOURS 2, got %d", cfg.Auth.TokenTTLHours)
	}
	if cfg.Auth.SeedAdmin {
		t.Error("Expected SEED_ADMIN false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PORT", "not-a-number")
	defer os.Clearenv()

	cfg := Load()

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT fallback 5432, got %d", cfg.Database.Port)
	}
}
