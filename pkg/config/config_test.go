package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AURELIA_APP_ENV", "dev")
	t.Setenv("AURELIA_APP_PORT", "8080")
	t.Setenv("AURELIA_BACKEND_BASE_URL", "https://backend.example.com")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev environment")
	}
	if cfg.Backend.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.Backend.RequestTimeout)
	}
	if cfg.Cloudinary.MaxMB != 10 {
		t.Fatalf("expected default upload limit, got %d", cfg.Cloudinary.MaxMB)
	}
}

func TestLoadRejectsRelativeBackendURL(t *testing.T) {
	setRequired(t)
	t.Setenv("AURELIA_BACKEND_BASE_URL", "backend.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-absolute backend URL")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("AURELIA_APP_ENV", "")
	t.Setenv("AURELIA_APP_PORT", "")
	t.Setenv("AURELIA_BACKEND_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when required values are missing")
	}
}
