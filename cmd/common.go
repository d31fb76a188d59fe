package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"leap-bridge/core/config"
	"leap-bridge/core/storage"
	"leap-bridge/core/table"
	"leap-bridge/core/tree"
	"leap-bridge/feature/exportfile"
)

// loadExport loads the tabular export from a local file when --file is
// set, otherwise from object storage.
func loadExport(ctx context.Context, cfg *config.Config, file, object string) (*table.Table, error) {
	if file != "" {
		return exportfile.LoadFile(file)
	}
	if object == "" {
		return nil, fmt.Errorf("either --file or --object is required")
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return exportfile.Load(ctx, client, cfg.Storage.Bucket, object)
}

// seedTree builds an in-memory tree, pre-populated with the branch paths
// listed one per line in the given file. Empty path means an empty tree.
func seedTree(pathsFile string) (*tree.MemTree, error) {
	if pathsFile == "" {
		return tree.NewMemTree(), nil
	}

	data, err := os.ReadFile(pathsFile)
	if err != nil {
		return nil, fmt.Errorf("read paths file: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return tree.NewMemTreeWithPaths(paths...)
}
