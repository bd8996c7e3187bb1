package config

import "testing"

func TestNormalizeConnectionStringTranslatesKeys(t *testing.T) {
	raw := "Host=db;Port=5432;Database=deposit_system;Username=app;Password=secret;Timeout=30;CommandTimeout=30"

	got := normalizeConnectionString(raw)
	want := "host=db port=5432 dbname=deposit_system user=app password=secret connect_timeout=30 statement_timeout=30s sslmode=disable"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeConnectionStringKeepsExplicitSSLMode(t *testing.T) {
	raw := "Host=db;Database=deposit_system;Username=app;Password=secret;sslmode=require"

	got := normalizeConnectionString(raw)
	want := "host=db dbname=deposit_system user=app password=secret sslmode=require"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeConnectionStringPassesThroughUnrecognizedForm(t *testing.T) {
	raw := "postgres://app:secret@db:5432/deposit_system"

	if got := normalizeConnectionString(raw); got != raw {
		t.Fatalf("expected raw string back, got %q", got)
	}
}
