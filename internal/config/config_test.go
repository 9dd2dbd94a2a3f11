package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != filepath.Join(dir, DefaultTarget) {
		t.Errorf("Target = %q", cfg.Target)
	}
	if cfg.Plan != DefaultPlan {
		t.Errorf("Plan = %q, want %q", cfg.Plan, DefaultPlan)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoadFromDir(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantPlan string
		wantFile string
		indent   string
	}{
		{
			name:     "toml",
			file:     "linefix.toml",
			content:  "target = \"src/c.ts\"\nplan = \"payment-gateway-superadmin\"\nindent = \"    \"\n",
			wantPlan: "payment-gateway-superadmin",
			indent:   "    ",
		},
		{
			name:     "yaml_plan_file",
			file:     "linefix.yaml",
			content:  "target: src/c.ts\nplan_file: plans/fix.toml\n",
			wantFile: "plans/fix.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			cfg, err := Load("", dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Target != filepath.Join(dir, "src/c.ts") {
				t.Errorf("Target = %q", cfg.Target)
			}
			if cfg.Plan != tt.wantPlan {
				t.Errorf("Plan = %q, want %q", cfg.Plan, tt.wantPlan)
			}
			wantFile := ""
			if tt.wantFile != "" {
				wantFile = filepath.Join(dir, tt.wantFile)
			}
			if cfg.PlanFile != wantFile {
				t.Errorf("PlanFile = %q, want %q", cfg.PlanFile, wantFile)
			}
			if cfg.Indent != tt.indent {
				t.Errorf("Indent = %q, want %q", cfg.Indent, tt.indent)
			}
			if cfg.Source == "" {
				t.Error("expected Source to be set")
			}
		})
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "target = \"/abs/controller.ts\"\n")

	cfg, err := Load(path, t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "/abs/controller.ts" {
		t.Errorf("Target = %q", cfg.Target)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml"), dir); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "both_plans", content: "plan = \"a\"\nplan_file = \"b.toml\"\n"},
		{name: "empty_target", content: "target = \"  \"\n"},
		{name: "bad_indent", content: "indent = \"x\"\n"},
		{name: "malformed", content: "target = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "linefix.toml"), tt.content)
			if _, err := Load("", dir); err == nil {
				t.Errorf("Load() expected error for %s", tt.name)
			}
		})
	}
}
