// Package config loads the TOML-backed budgets that bound the lowerer and
// evaluator (spec §4.2, §4.3): the operation counter, the conditional
// tail-call bound, and the distributive-conditional branch ceiling, all of
// which default to the constants named in the spec but are overridable from
// a config file for experimentation and stress testing.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"tscore/internal/evaluate"
	"tscore/internal/lower"
)

// Budgets holds the overridable resource limits a Compiler is built with.
type Budgets struct {
	// OperationBudget bounds the lowerer's recursive step counter
	// (spec §4.2, default 100_000).
	OperationBudget int `toml:"operation_budget"`

	// TailRecursionBudget bounds the conditional-type tail-call loop
	// (spec §4.3.1, default 1000).
	TailRecursionBudget int `toml:"tail_recursion_budget"`

	// DistributiveBranchBudget bounds how many union members a
	// distributive conditional may expand into (spec §4.3.1, default 100).
	DistributiveBranchBudget int `toml:"distributive_branch_budget"`
}

// Default returns the budgets at the spec's own named constants.
func Default() Budgets {
	return Budgets{
		OperationBudget:          lower.DefaultMaxOperations,
		TailRecursionBudget:      evaluate.DefaultMaxTailRecursion,
		DistributiveBranchBudget: evaluate.DefaultMaxDistributiveBranches,
	}
}

// Load reads a TOML config file, starting from Default() so a file that
// only overrides one field leaves the others at the spec's defaults.
func Load(path string) (Budgets, error) {
	b := Default()
	if _, err := toml.DecodeFile(path, &b); err != nil {
		return Budgets{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return b, nil
}
