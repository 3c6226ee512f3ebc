package contract

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/huangsam/blamescope/schema"
	"golang.org/x/term"
)

// Config holds the runtime configuration for a scan.
// Fields that require complex parsing (like ignore sets and columns) are
// populated by ProcessAndValidate after flags are read.
type Config struct {
	RepoPath        string   // Absolute path to the Git repository root
	IgnoreDirs      []string // Directory names excluded at any depth (FINAL merged set)
	IgnoreFileTypes []string // Normalized lowercase extensions with leading dot (FINAL merged set)
	FileLimit       int      // Stop after this many surviving files; 0 means no limit
	Columns         []string // Attribute columns for the line_blame analysis
	GroupBy         []string // Ordered attribute names for the breakdown analysis
	Output          schema.OutputMode
	OutputFile      string // Explicit output file; empty means stdout or auto-generated
	OutputDir       string // Directory for auto-generated output files
	StoreBackend    schema.StoreBackend
	StoreConnect    string // Connection string for the report export store
	UseColors       bool
	DryRun          bool
}

// Clone returns a copy of the configuration for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.IgnoreDirs = slices.Clone(c.IgnoreDirs)
	clone.IgnoreFileTypes = slices.Clone(c.IgnoreFileTypes)
	clone.Columns = slices.Clone(c.Columns)
	clone.GroupBy = slices.Clone(c.GroupBy)
	return &clone
}

// ConfigRawInput holds the raw string inputs from all sources (file, env,
// flags) that require parsing and validation. Viper unmarshals into this
// struct.
type ConfigRawInput struct {
	RepoPathStr     string `mapstructure:"repo"`
	IgnoreDirs      string `mapstructure:"ignore-dirs"`
	IgnoreFileTypes string `mapstructure:"ignore-file-types"`
	FileLimit       int    `mapstructure:"file-limit"`
	Columns         string `mapstructure:"columns"`
	GroupBy         string `mapstructure:"by"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	OutputDir       string `mapstructure:"output-dir"`
	StoreBackend    string `mapstructure:"store-backend"`
	StoreConnect    string `mapstructure:"store-connect"`
	Color           string `mapstructure:"color"`
	DryRun          bool   `mapstructure:"dry-run"`
}

// splitList parses a comma-separated flag value into trimmed, non-empty
// parts.
func splitList(s string) []string {
	var parts []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// NormalizeFileTypes lowercases extensions and ensures each carries a
// leading dot, so ".PNG" and "png" are treated as the same exclusion.
func NormalizeFileTypes(fileTypes []string) []string {
	normalized := make([]string, 0, len(fileTypes))
	for _, ft := range fileTypes {
		ft = strings.ToLower(strings.TrimSpace(ft))
		if ft == "" {
			continue
		}
		if !strings.HasPrefix(ft, ".") {
			ft = "." + ft
		}
		normalized = append(normalized, ft)
	}
	return normalized
}

// validateAttributeNames checks every name against the canonical attribute
// list for blame records.
func validateAttributeNames(names []string) error {
	for _, name := range names {
		if !slices.Contains(schema.AllAttributeNames, name) {
			return fmt.Errorf("unknown attribute '%s'. must be one of: %s",
				name, strings.Join(schema.AllAttributeNames, ", "))
		}
	}
	return nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// --- 1. Output Mode Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 2. File Limit Validation ---
	if input.FileLimit < 0 || input.FileLimit > MaxFileLimit {
		return fmt.Errorf("file limit must be between 0 and %d (received %d)", MaxFileLimit, input.FileLimit)
	}
	cfg.FileLimit = input.FileLimit

	// --- 3. Ignore Sets (defaults merged once with user overrides) ---
	cfg.IgnoreDirs = append(slices.Clone(schema.DefaultIgnoreDirectories), splitList(input.IgnoreDirs)...)
	cfg.IgnoreFileTypes = NormalizeFileTypes(
		append(slices.Clone(schema.DefaultIgnoreFileTypes), splitList(input.IgnoreFileTypes)...))

	// --- 4. Column and Grouping Attribute Validation ---
	cfg.Columns = splitList(input.Columns)
	if len(cfg.Columns) == 0 {
		cfg.Columns = slices.Clone(schema.DefaultLineColumns)
	}
	if err := validateAttributeNames(cfg.Columns); err != nil {
		return err
	}

	cfg.GroupBy = splitList(input.GroupBy)
	if len(cfg.GroupBy) == 0 {
		cfg.GroupBy = []string{schema.AttrContributor}
	}
	if err := validateAttributeNames(cfg.GroupBy); err != nil {
		return err
	}

	// --- 5. Store Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect

	// --- 6. Output File Resolution ---
	cfg.OutputFile = input.OutputFile
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not determine working directory: %w", err)
		}
		cfg.OutputDir = wd
	}
	cfg.DryRun = input.DryRun

	// --- 7. Git Repository Root Resolution ---
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	root, err := client.GetRepoRoot(ctx, searchPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = root

	// --- 8. Color Resolution ---
	switch strings.ToLower(input.Color) {
	case "yes":
		cfg.UseColors = true
	case "no":
		cfg.UseColors = false
	default:
		cfg.UseColors = term.IsTerminal(int(os.Stdout.Fd()))
	}

	return nil
}
