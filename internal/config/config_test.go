package config

import (
	"os"
	"path/filepath"
	"testing"

	"tscore/internal/evaluate"
	"tscore/internal/lower"
)

func TestDefault_MatchesPackageConstants(t *testing.T) {
	b := Default()
	if b.OperationBudget <= 0 || b.TailRecursionBudget <= 0 || b.DistributiveBranchBudget <= 0 {
		t.Fatalf("expected positive defaults, got %+v", b)
	}
	if b.OperationBudget != lower.DefaultMaxOperations ||
		b.TailRecursionBudget != evaluate.DefaultMaxTailRecursion ||
		b.DistributiveBranchBudget != evaluate.DefaultMaxDistributiveBranches {
		t.Fatalf("expected defaults to equal the lower/evaluate package constants, got %+v", b)
	}
}

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budgets.toml")
	if err := os.WriteFile(path, []byte("operation_budget = 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.OperationBudget != 42 {
		t.Fatalf("expected operation_budget override to take effect, got %d", b.OperationBudget)
	}
	want := Default()
	if b.TailRecursionBudget != want.TailRecursionBudget {
		t.Fatalf("expected tail_recursion_budget to keep its default, got %d", b.TailRecursionBudget)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
