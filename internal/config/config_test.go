package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "secret")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error without DATABASE_URL")
		}
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/dayplan")
		t.Setenv("JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error without JWT_SECRET")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/dayplan")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("AI_PROVIDER", "")
		t.Setenv("RABBITMQ_URL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.ServerPort != "8080" {
			t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
		}
		if cfg.AIProvider != "ollama" {
			t.Errorf("AIProvider = %q, want ollama", cfg.AIProvider)
		}
		if cfg.RabbitMQURL != "" {
			t.Errorf("RabbitMQURL should default empty, got %q", cfg.RabbitMQURL)
		}
	})

	t.Run("ai config map", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/dayplan")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("AI_BASE_URL", "http://ollama:11434")
		t.Setenv("AI_MODEL", "llama3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		m := cfg.AIConfig()
		if m["base_url"] != "http://ollama:11434" || m["model"] != "llama3" {
			t.Errorf("AIConfig = %v", m)
		}
	})
}
