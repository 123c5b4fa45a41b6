package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (FREIGHTQUOTE_OUTPUT_DIR, ...)
const EnvPrefix = "FREIGHTQUOTE"

// Config represents the application configuration
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Output OutputConfig `mapstructure:"output"`
	Quote  QuoteConfig  `mapstructure:"quote"`
}

// TierFile binds a customer tier to its quote workbook
type TierFile struct {
	ID   string `mapstructure:"id"`
	File string `mapstructure:"file"`
}

// DataConfig holds input settings
type DataConfig struct {
	Dir         string        `mapstructure:"dir"`          // Directory holding workbooks and PDFs
	Tiers       []TierFile    `mapstructure:"tiers"`        // Tier workbooks, processed in this order
	ZipDBTier   string        `mapstructure:"zip_db_tier"`  // Tier whose GOFO sheet carries the zip table
	RemotePDFs  []string      `mapstructure:"remote_pdfs"`  // FedEx DAS notices
	RemoteLists []string      `mapstructure:"remote_lists"` // Plain-text remote zip lists
	PDFToText   string        `mapstructure:"pdftotext"`    // pdftotext binary
	PDFTimeout  time.Duration `mapstructure:"pdf_timeout"`  // Hard limit per PDF
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Output file name (without extension)
	Formats  []string `mapstructure:"formats"`   // Exporters to run (json, excel, word)
}

// QuoteConfig holds defaults for the quote command
type QuoteConfig struct {
	DefaultTier        string  `mapstructure:"default_tier"`
	DefaultFuelPercent float64 `mapstructure:"default_fuel_percent"` // Used when neither flag nor bundle gives one
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// A .env file next to the working directory is applied first; real environment
// variables always win over it.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	// Environment overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Determine config file to use
	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("==========================================")
			fmt.Println("Config file not found. Using defaults:")
			fmt.Println("  Data:   ./data (T0.xlsx .. T3.xlsx)")
			fmt.Println("  Output: ./public")
			fmt.Println("==========================================")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Normalize paths
	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	// Create output directory if it doesn't exist
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.tiers", []map[string]interface{}{
		{"id": "T0", "file": "T0.xlsx"},
		{"id": "T1", "file": "T1.xlsx"},
		{"id": "T2", "file": "T2.xlsx"},
		{"id": "T3", "file": "T3.xlsx"},
	})
	v.SetDefault("data.zip_db_tier", "T0")
	v.SetDefault("data.remote_pdfs", []string{
		"FGE_DAS_Contiguous_Extended_Alaska_Hawaii_2025.pdf",
		"FGE_DAS_Zip_Code_Changes_2025.pdf",
	})
	v.SetDefault("data.remote_lists", []string{})
	v.SetDefault("data.pdftotext", "pdftotext")
	v.SetDefault("data.pdf_timeout", "30s")

	// Output defaults
	v.SetDefault("output.dir", "./public")
	v.SetDefault("output.file_name", "quote-data")
	v.SetDefault("output.formats", []string{"json", "excel", "word"})

	// Quote defaults
	v.SetDefault("quote.default_tier", "T3")
	v.SetDefault("quote.default_fuel_percent", 16.0)
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absData, err := filepath.Abs(c.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve data.dir: %w", err)
	}
	c.Data.Dir = absData

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// DataPath resolves a data file name against data.dir; absolute names are kept
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// TierPath returns the workbook path of a tier
func (c *Config) TierPath(id string) (string, bool) {
	for _, t := range c.Data.Tiers {
		if t.ID == id {
			return c.DataPath(t.File), true
		}
	}
	return "", false
}

// TierIDs returns the configured tier ids in processing order
func (c *Config) TierIDs() []string {
	ids := make([]string, 0, len(c.Data.Tiers))
	for _, t := range c.Data.Tiers {
		ids = append(ids, t.ID)
	}
	return ids
}

// RemotePDFPaths returns the remote-area PDF paths
func (c *Config) RemotePDFPaths() []string {
	return c.dataPaths(c.Data.RemotePDFs)
}

// RemoteListPaths returns the plain-text remote zip list paths
func (c *Config) RemoteListPaths() []string {
	return c.dataPaths(c.Data.RemoteLists)
}

func (c *Config) dataPaths(names []string) []string {
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, c.DataPath(n))
	}
	return paths
}

// OutputPath returns the full path of an output file with the given extension
func (c *Config) OutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// LogPath returns the run log location
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "freight_quote.log")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Data.Tiers) == 0 {
		return fmt.Errorf("data.tiers must contain at least one tier")
	}

	seen := make(map[string]bool, len(c.Data.Tiers))
	for i, t := range c.Data.Tiers {
		if t.ID == "" || t.File == "" {
			return fmt.Errorf("data.tiers[%d] needs both id and file", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tier id: %s", t.ID)
		}
		seen[t.ID] = true
	}

	if c.Data.ZipDBTier != "" && !seen[c.Data.ZipDBTier] {
		return fmt.Errorf("data.zip_db_tier %q is not a configured tier", c.Data.ZipDBTier)
	}

	if c.Data.PDFTimeout <= 0 {
		return fmt.Errorf("data.pdf_timeout must be positive")
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	if c.Quote.DefaultFuelPercent < 0 {
		return fmt.Errorf("quote.default_fuel_percent cannot be negative")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Freight Quote Configuration ===")
	fmt.Printf("Data Directory:   %s\n", c.Data.Dir)
	for _, t := range c.Data.Tiers {
		fmt.Printf("  Tier %-4s        %s\n", t.ID, t.File)
	}
	fmt.Printf("Zip DB Tier:      %s\n", c.Data.ZipDBTier)
	fmt.Printf("Remote PDFs:      %v\n", c.Data.RemotePDFs)
	fmt.Printf("Remote Lists:     %v\n", c.Data.RemoteLists)
	fmt.Printf("PDF Timeout:      %s\n", c.Data.PDFTimeout)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Printf("Default Fuel:     %.2f%%\n", c.Quote.DefaultFuelPercent)
	fmt.Println("===================================")
}
