package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("FREIGHTQUOTE_OUTPUT_DIR", t.TempDir())

	// Load config without a file (should use defaults)
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if got := cfg.TierIDs(); strings.Join(got, ",") != "T0,T1,T2,T3" {
		t.Errorf("TierIDs() = %v, expected T0..T3 in order", got)
	}
	if cfg.Data.ZipDBTier != "T0" {
		t.Errorf("ZipDBTier = %s, expected T0", cfg.Data.ZipDBTier)
	}
	if cfg.Data.PDFTimeout != 30*time.Second {
		t.Errorf("PDFTimeout = %s, expected 30s", cfg.Data.PDFTimeout)
	}
	if len(cfg.Data.RemotePDFs) != 2 {
		t.Errorf("RemotePDFs = %v, expected the two DAS notices", cfg.Data.RemotePDFs)
	}
	if len(cfg.Output.Formats) != 3 {
		t.Errorf("Formats = %v", cfg.Output.Formats)
	}
	if cfg.Quote.DefaultFuelPercent != 16 {
		t.Errorf("DefaultFuelPercent = %v, expected 16", cfg.Quote.DefaultFuelPercent)
	}
	if !filepath.IsAbs(cfg.Data.Dir) || !filepath.IsAbs(cfg.Output.Dir) {
		t.Error("Expected absolute data and output directories")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}

	cfg.Print()
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
data:
  dir: ` + filepath.Join(dir, "rates") + `
  tiers:
    - id: VIP
      file: vip.xlsx
    - id: STD
      file: /abs/std.xlsx
  zip_db_tier: VIP
  pdf_timeout: 5s
output:
  dir: ` + filepath.Join(dir, "out") + `
  file_name: snapshot
  formats: [json]
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p, ok := cfg.TierPath("VIP"); !ok || p != filepath.Join(dir, "rates", "vip.xlsx") {
		t.Errorf("TierPath(VIP) = %s, %v", p, ok)
	}
	if p, _ := cfg.TierPath("STD"); p != "/abs/std.xlsx" {
		t.Errorf("TierPath(STD) = %s, expected absolute path kept", p)
	}
	if _, ok := cfg.TierPath("T0"); ok {
		t.Error("TierPath(T0) should not exist")
	}
	if got := cfg.OutputPath("json"); got != filepath.Join(dir, "out", "snapshot.json") {
		t.Errorf("OutputPath(json) = %s", got)
	}
	if cfg.Data.PDFTimeout != 5*time.Second {
		t.Errorf("PDFTimeout = %s, expected 5s", cfg.Data.PDFTimeout)
	}
	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		t.Errorf("Output directory should be created: %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	out := t.TempDir()
	t.Setenv("FREIGHTQUOTE_OUTPUT_DIR", out)
	t.Setenv("FREIGHTQUOTE_OUTPUT_FILE_NAME", "from-env")
	t.Setenv("FREIGHTQUOTE_QUOTE_DEFAULT_FUEL_PERCENT", "18.5")

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.FileName != "from-env" {
		t.Errorf("FileName = %s, expected from-env", cfg.Output.FileName)
	}
	if cfg.Quote.DefaultFuelPercent != 18.5 {
		t.Errorf("DefaultFuelPercent = %v, expected 18.5", cfg.Quote.DefaultFuelPercent)
	}
	if cfg.LogPath() != filepath.Join(out, "freight_quote.log") {
		t.Errorf("LogPath() = %s", cfg.LogPath())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Data: DataConfig{
				Tiers:      []TierFile{{ID: "T0", File: "T0.xlsx"}, {ID: "T1", File: "T1.xlsx"}},
				ZipDBTier:  "T0",
				PDFTimeout: time.Second,
			},
			Output: OutputConfig{FileName: "quote-data"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no tiers", func(c *Config) { c.Data.Tiers = nil }, "at least one tier"},
		{"duplicate tier", func(c *Config) { c.Data.Tiers[1].ID = "T0" }, "duplicate tier"},
		{"tier without file", func(c *Config) { c.Data.Tiers[0].File = "" }, "needs both"},
		{"unknown zip db tier", func(c *Config) { c.Data.ZipDBTier = "T9" }, "zip_db_tier"},
		{"zero timeout", func(c *Config) { c.Data.PDFTimeout = 0 }, "pdf_timeout"},
		{"empty file name", func(c *Config) { c.Output.FileName = "" }, "file_name"},
		{"negative fuel", func(c *Config) { c.Quote.DefaultFuelPercent = -1 }, "fuel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tt.wantErr)
			}
		})
	}
}
