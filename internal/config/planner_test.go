package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPlannerConfig(t *testing.T) {
	cfg := DefaultPlannerConfig()

	if cfg.LatticeSize == nil || *cfg.LatticeSize != 10 {
		t.Errorf("Expected LatticeSize 10, got %v", cfg.LatticeSize)
	}
	if cfg.GetIterationFactor() != 4 {
		t.Errorf("GetIterationFactor() = %d, want 4", cfg.GetIterationFactor())
	}
	if cfg.GetAlgorithm() != AlgorithmMeltSortGrow {
		t.Errorf("GetAlgorithm() = %q, want %q", cfg.GetAlgorithm(), AlgorithmMeltSortGrow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEmptyConfigFallsBack(t *testing.T) {
	cfg := EmptyPlannerConfig()

	if cfg.GetLatticeSize() != DefaultLatticeSize {
		t.Errorf("GetLatticeSize() = %d, want %d", cfg.GetLatticeSize(), DefaultLatticeSize)
	}
	if cfg.GetArchivePath() != "" {
		t.Errorf("GetArchivePath() = %q, want empty", cfg.GetArchivePath())
	}
	if cfg.GetLibraryDir() != "." {
		t.Errorf("GetLibraryDir() = %q, want .", cfg.GetLibraryDir())
	}
}

func TestLoadPlannerConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "planner.json")

	testJSON := `{
  "lattice_size": 6,
  "iteration_factor": 8,
  "algorithm": "gradient_fields",
  "archive_path": "plans.db"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadPlannerConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GetLatticeSize() != 6 {
		t.Errorf("GetLatticeSize() = %d, want 6", cfg.GetLatticeSize())
	}
	if cfg.GetIterationFactor() != 8 {
		t.Errorf("GetIterationFactor() = %d, want 8", cfg.GetIterationFactor())
	}
	if cfg.GetAlgorithm() != AlgorithmGradient {
		t.Errorf("GetAlgorithm() = %q, want %q", cfg.GetAlgorithm(), AlgorithmGradient)
	}
	if cfg.GetArchivePath() != "plans.db" {
		t.Errorf("GetArchivePath() = %q, want plans.db", cfg.GetArchivePath())
	}
}

func TestLoadPlannerConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("planner.yaml", "{}"), ".json extension"},
		{"missing file", filepath.Join(tmpDir, "absent.json"), "failed to stat"},
		{"bad json", write("bad.json", "{"), "failed to parse"},
		{"size too large", write("big.json", `{"lattice_size": 65}`), "lattice_size"},
		{"size zero", write("zero.json", `{"lattice_size": 0}`), "lattice_size"},
		{"factor zero", write("factor.json", `{"iteration_factor": 0}`), "iteration_factor"},
		{"empty algorithm", write("algo.json", `{"algorithm": ""}`), "algorithm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPlannerConfig(tt.path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.GetLatticeSize() != DefaultLatticeSize {
		t.Errorf("defaults file lattice_size = %d, want %d", cfg.GetLatticeSize(), DefaultLatticeSize)
	}
	if cfg.GetAlgorithm() != AlgorithmMeltSortGrow {
		t.Errorf("defaults file algorithm = %q", cfg.GetAlgorithm())
	}
}
