package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DISPATCH_MODE", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.DispatchMode != "local" {
		t.Errorf("DispatchMode = %q", cfg.DispatchMode)
	}
	if !cfg.IsDevLike() {
		t.Error("dev env should be dev-like")
	}
}

func TestLoadNormalizesEnv(t *testing.T) {
	tests := map[string]string{
		"prod":        "production",
		"PRODUCTION":  "production",
		"staging":     "staging",
		"local":       "local",
		"development": "dev",
		"bogus":       "dev",
	}
	for raw, want := range tests {
		t.Setenv("ENV", raw)
		if cfg := Load(); cfg.Env != want {
			t.Errorf("ENV=%q normalized to %q, want %q", raw, cfg.Env, want)
		}
	}
}

func TestLoadDispatchMode(t *testing.T) {
	t.Setenv("DISPATCH_MODE", "SQS")
	if cfg := Load(); cfg.DispatchMode != "queue" {
		t.Errorf("DispatchMode = %q, want queue", cfg.DispatchMode)
	}

	t.Setenv("DISPATCH_MODE", "whatever")
	if cfg := Load(); cfg.DispatchMode != "local" {
		t.Errorf("DispatchMode = %q, want local", cfg.DispatchMode)
	}
}

func TestIsDevLike(t *testing.T) {
	for env, want := range map[string]bool{
		"dev": true, "local": true, "staging": false, "production": false,
	} {
		if got := (Config{Env: env}).IsDevLike(); got != want {
			t.Errorf("IsDevLike(%s) = %v", env, got)
		}
	}
}
