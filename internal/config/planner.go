package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical planner defaults file.
const DefaultConfigPath = "config/planner.defaults.json"

// Built-in fallbacks used by the Get* methods when a field is absent.
const (
	DefaultLatticeSize     = 10
	MaxLatticeSize         = 64
	DefaultIterationFactor = 4
	AlgorithmMeltSortGrow  = "msg"
	AlgorithmGradient      = "gradient_fields"
)

// PlannerConfig is the JSON document read by cmd/msg. Every field is
// optional; unset fields fall back to the built-in defaults.
type PlannerConfig struct {
	LatticeSize     *int    `json:"lattice_size,omitempty"`
	IterationFactor *int    `json:"iteration_factor,omitempty"`
	Algorithm       *string `json:"algorithm,omitempty"`

	// ArchivePath is the sqlite file plans are archived to. Empty disables
	// archiving.
	ArchivePath *string `json:"archive_path,omitempty"`

	// LibraryDir holds saved structures and movement logs.
	LibraryDir *string `json:"library_dir,omitempty"`
}

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

// EmptyPlannerConfig returns a PlannerConfig with all fields set to nil.
func EmptyPlannerConfig() *PlannerConfig {
	return &PlannerConfig{}
}

// DefaultPlannerConfig returns a config with every field populated from the
// built-in defaults.
func DefaultPlannerConfig() *PlannerConfig {
	return &PlannerConfig{
		LatticeSize:     ptrInt(DefaultLatticeSize),
		IterationFactor: ptrInt(DefaultIterationFactor),
		Algorithm:       ptrString(AlgorithmMeltSortGrow),
		ArchivePath:     ptrString(""),
		LibraryDir:      ptrString("."),
	}
}

// LoadPlannerConfig reads and validates a JSON config file.
func LoadPlannerConfig(path string) (*PlannerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParsePlannerConfig(data)
}

// ParsePlannerConfig decodes and validates a JSON document.
func ParsePlannerConfig(data []byte) (*PlannerConfig, error) {
	cfg := EmptyPlannerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded, intended
// for test setup.
func MustLoadDefaultConfig() *PlannerConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadPlannerConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the fields that are set. An unsupported algorithm name
// is not rejected here: the planner reports it as its own error kind.
func (c *PlannerConfig) Validate() error {
	if c.LatticeSize != nil {
		if *c.LatticeSize < 1 || *c.LatticeSize > MaxLatticeSize {
			return fmt.Errorf("lattice_size must be between 1 and %d, got %d", MaxLatticeSize, *c.LatticeSize)
		}
	}
	if c.IterationFactor != nil && *c.IterationFactor < 1 {
		return fmt.Errorf("iteration_factor must be positive, got %d", *c.IterationFactor)
	}
	if c.Algorithm != nil && *c.Algorithm == "" {
		return fmt.Errorf("algorithm must not be empty")
	}
	return nil
}

// GetLatticeSize returns the lattice edge length.
func (c *PlannerConfig) GetLatticeSize() int {
	if c.LatticeSize == nil {
		return DefaultLatticeSize
	}
	return *c.LatticeSize
}

// GetIterationFactor returns the multiplier used by the divergence guard.
func (c *PlannerConfig) GetIterationFactor() int {
	if c.IterationFactor == nil {
		return DefaultIterationFactor
	}
	return *c.IterationFactor
}

// GetAlgorithm returns the selected planning algorithm.
func (c *PlannerConfig) GetAlgorithm() string {
	if c.Algorithm == nil {
		return AlgorithmMeltSortGrow
	}
	return *c.Algorithm
}

func (c *PlannerConfig) GetArchivePath() string {
	if c.ArchivePath == nil {
		return ""
	}
	return *c.ArchivePath
}

func (c *PlannerConfig) GetLibraryDir() string {
	if c.LibraryDir == nil || *c.LibraryDir == "" {
		return "."
	}
	return *c.LibraryDir
}
