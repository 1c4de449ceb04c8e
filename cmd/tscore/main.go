// Command tscore drives the type-checker core (internal/types,
// internal/typeast, internal/lower, internal/evaluate, internal/subtype,
// internal/glue) over TOML fixtures that describe a type-AST node arena
// directly, since real lexing and parsing are out of scope for this core
// (spec §1).
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
