package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"tscore/internal/config"
	"tscore/internal/diag"
	"tscore/internal/glue"
	"tscore/internal/source"
	"tscore/internal/types"
)

// snapshotFile is the msgpack document a `dump` writes and a `load` reads:
// the compiled fixture's entire interner plus which TypeID its root
// resolved to, so a later `load` can redisplay it without re-lowering.
type snapshotFile struct {
	Root     types.TypeID  `msgpack:"root"`
	Interner types.Snapshot `msgpack:"interner"`
}

func newDumpCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dump <fixture.toml>",
		Short: "Lower a fixture and write its compiled interner to a msgpack file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to <fixture>.tscdump)")
	return cmd
}

func runDump(fixturePath, out string) error {
	if out == "" {
		out = fixturePath + ".tscdump"
	}

	spec, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}
	builder := newFixtureBuilder(spec, source.NewInterner())
	if err := builder.build(); err != nil {
		return err
	}

	bag := diag.NewBag(256)
	compiler := glue.NewWithBudgets(nil, diag.BagReporter{Bag: bag}, config.Default())
	compiler.Interner.Strings = builder.strings // share the atom table the fixture was built with
	compiler.Resolver = wireAliases(compiler, builder)

	rootIdx, err := builder.node(spec.Root)
	if err != nil {
		return err
	}
	root := compiler.LowerType(builder.tree, rootIdx)

	data, err := msgpack.Marshal(snapshotFile{Root: root, Interner: compiler.Interner.Snapshot()})
	if err != nil {
		return fmt.Errorf("dump: encoding snapshot: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("dump: writing %s: %w", out, err)
	}
	fmt.Println(out)
	return nil
}
