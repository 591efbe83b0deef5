package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}

	if cmd.Use != "finsim" {
		t.Errorf("Expected root command use to be 'finsim', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"project",
		"validate",
		"serve",
		"tui",
		"version",
	}

	cmd := rootCmd.Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range cmd {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	planFile := filepath.Join(t.TempDir(), "plan.yaml")
	planYAML := `config:
  startDate: "2025-01-01"
  viewHorizonDays: 30
  startBalancePersonal: "1000.00"
  strategy:
    mode: max
`
	if err := os.WriteFile(planFile, []byte(planYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := rootCmd
	cmd.SetArgs([]string{"validate", planFile})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected valid plan to pass validation, got %v", err)
	}
}

func TestValidateCommandRejectsBadPlan(t *testing.T) {
	planFile := filepath.Join(t.TempDir(), "plan.yaml")
	planYAML := `config:
  startDate: "2025-01-01"
  strategy:
    mode: aggressive
`
	if err := os.WriteFile(planFile, []byte(planYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := rootCmd
	cmd.SetArgs([]string{"validate", planFile})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid strategy mode")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FINSIM_TEST_KEY", "set")
	if got := envOr("FINSIM_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Expected env value, got %s", got)
	}
	if got := envOr("FINSIM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
}
