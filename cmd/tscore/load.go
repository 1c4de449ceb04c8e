package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"tscore/internal/types"
)

func newLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <snapshot.tscdump>",
		Short: "Read back a dumped interner snapshot and print its root type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0])
		},
	}
	return cmd
}

func runLoad(path string) error {
	_, in, root, err := loadSnapshotFile(path)
	if err != nil {
		return err
	}
	fmt.Println(in.Display(root))
	return nil
}

// loadSnapshotFile reads and decodes a snapshotFile, rehydrating its
// Interner. Shared by `load` and `explore`.
func loadSnapshotFile(path string) (snapshotFile, *types.Interner, types.TypeID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshotFile{}, nil, types.NoTypeID, fmt.Errorf("load: reading %s: %w", path, err)
	}
	var file snapshotFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return snapshotFile{}, nil, types.NoTypeID, fmt.Errorf("load: decoding %s: %w", path, err)
	}
	in := types.NewInternerFromSnapshot(file.Interner)
	return file, in, file.Root, nil
}
