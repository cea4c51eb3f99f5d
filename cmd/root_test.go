package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/literacyhub/internal/config"
)

func parseRootFlags(t *testing.T, args ...string) {
	t.Helper()
	if err := rootCmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	t.Cleanup(func() {
		for _, name := range []string{"learner", "store", "db"} {
			_ = rootCmd.Flags().Set(name, "")
		}
	})
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LITERACYHUB_LEARNER", "from-env")
	t.Setenv("LITERACYHUB_STORE", "sqlite")
	dbPath := filepath.Join(t.TempDir(), "test.db")
	parseRootFlags(t, "--learner", "ada", "--store", "memory", "--db", dbPath)

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Learner != "ada" {
		t.Errorf("Learner = %q, want ada", cfg.Learner)
	}
	if cfg.Store != config.StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
	if cfg.DB != dbPath {
		t.Errorf("DB = %q, want %q", cfg.DB, dbPath)
	}
}

func TestLoadConfig_EnvWithoutFlags(t *testing.T) {
	t.Setenv("LITERACYHUB_LEARNER", "grace")
	parseRootFlags(t)

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Learner != "grace" {
		t.Errorf("Learner = %q, want grace", cfg.Learner)
	}
}

func TestLoadConfig_InvalidStoreFlag(t *testing.T) {
	parseRootFlags(t, "--store", "mongo")

	if _, err := loadConfig(rootCmd); err == nil {
		t.Error("expected an error for an unknown store")
	}
}

func TestResolveDBPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "progress.db")
	got, err := resolveDBPath(config.Config{DB: dbPath})
	if err != nil {
		t.Fatalf("resolveDBPath: %v", err)
	}
	if got != dbPath {
		t.Errorf("resolveDBPath = %q, want %q", got, dbPath)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Budgeting 101", 10, "Budgeting…"},
		{"💰💰💰", 2, "💰…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestNewTable(t *testing.T) {
	out := newTable("ID", "Title").Row("savings", "Savings Strategy").Render()
	for _, want := range []string{"ID", "Title", "savings", "Savings Strategy"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0.0012, "$0.0012"},
		{1.5, "$1.50"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}
