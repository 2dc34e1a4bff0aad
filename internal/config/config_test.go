package config

import "testing"

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_HOURS", "48")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("OVERDUE_SWEEP_MINUTES", "15")
	t.Setenv("OVERDUE_SWEEP_CRON", "*/10 * * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if cfg.TokenTTLHours != 48 {
		t.Errorf("TokenTTLHours = %d, want 48", cfg.TokenTTLHours)
	}
	if cfg.SeedDemoData {
		t.Error("SeedDemoData should be false")
	}
	if cfg.OverdueSweepMinutes != 15 {
		t.Errorf("OverdueSweepMinutes = %d, want 15", cfg.OverdueSweepMinutes)
	}
	if cfg.OverdueSweepCron != "*/10 * * * *" {
		t.Errorf("OverdueSweepCron = %q, want %q", cfg.OverdueSweepCron, "*/10 * * * *")
	}
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric PORT")
	}
}
