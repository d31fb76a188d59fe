package exportfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"leap-bridge/core/storage"
	"leap-bridge/core/table"

	"github.com/minio/minio-go/v7"
)

// Load downloads a tabular export object from storage and parses it.
func Load(ctx context.Context, client storage.Client, bucket, objectName string) (*table.Table, error) {
	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get export %q: %w", objectName, err)
	}
	defer obj.Close()

	tbl, err := table.ReadCSV(obj)
	if err != nil {
		return nil, fmt.Errorf("parse export %q: %w", objectName, err)
	}
	return tbl, nil
}

// LoadFile parses a tabular export from the local filesystem.
func LoadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %q: %w", path, err)
	}
	defer f.Close()

	tbl, err := table.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse export %q: %w", path, err)
	}
	return tbl, nil
}

// SaveJSON uploads a value as indented JSON, for run reports and
// reconciliation results.
func SaveJSON(ctx context.Context, client storage.Client, bucket, objectName string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %q: %w", objectName, err)
	}

	_, err = client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %q: %w", objectName, err)
	}
	return nil
}
