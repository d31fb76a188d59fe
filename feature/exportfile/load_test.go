package exportfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leap-bridge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "leap", "exports/mapping.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(exportCSV)), nil)

	tbl, err := Load(context.Background(), client, "leap", "exports/mapping.csv")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 4)
	client.AssertExpectations(t)
}

func TestLoad_ObjectError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "leap", "exports/missing.csv", mock.Anything).
		Return(nil, errors.New("object not found"))

	_, err := Load(context.Background(), client, "leap", "exports/missing.csv")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(exportCSV), 0o644))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSaveJSON(t *testing.T) {
	client := new(mocks.Client)
	var uploaded []byte
	client.On("PutObject", mock.Anything, "leap", "reports/run.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(minio.UploadInfo{}, nil)

	err := SaveJSON(context.Background(), client, "leap", "reports/run.json", map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.True(t, bytes.Contains(uploaded, []byte(`"rows": 3`)))
	client.AssertExpectations(t)
}

func TestSaveJSON_PutError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "leap", "reports/run.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket missing"))

	err := SaveJSON(context.Background(), client, "leap", "reports/run.json", struct{}{})
	assert.Error(t, err)
}
