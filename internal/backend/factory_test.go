package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketledger/internal/config"
	"pocketledger/internal/storage/jsonfile"
	"pocketledger/internal/storage/memory"
	"pocketledger/internal/storage/sqlite"
)

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		config Config
		check  func(t *testing.T, r *BackendResult)
	}{
		{
			name:   "memory",
			config: Config{Type: MemoryBackend},
			check: func(t *testing.T, r *BackendResult) {
				assert.IsType(t, &memory.Store{}, r.Storage)
				assert.Nil(t, r.Cleanup)
			},
		},
		{
			name:   "jsonfile",
			config: Config{Type: JSONFileBackend, DataDirectory: filepath.Join(dir, "json")},
			check: func(t *testing.T, r *BackendResult) {
				assert.IsType(t, &jsonfile.Store{}, r.Storage)
				assert.DirExists(t, filepath.Join(dir, "json"))
			},
		},
		{
			name:   "sqlite",
			config: Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "ledger.db")},
			check: func(t *testing.T, r *BackendResult) {
				assert.IsType(t, &sqlite.Repository{}, r.Storage)
				assert.NotNil(t, r.Cleanup)
			},
		},
	}

	f := NewFactory(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r, err := f.CreateBackend(ctx, tt.config)
			require.NoError(t, err)
			t.Cleanup(func() { _ = r.Close() })
			tt.check(t, r)

			require.NoError(t, r.Storage.Put(ctx, "k", []byte(`[]`)))
			got, ok, err := r.Storage.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestCreateBackendRejectsBadConfig(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	for _, cfg := range []Config{
		{Type: "sheets"},
		{Type: SQLiteBackend},
		{Type: JSONFileBackend},
	} {
		_, err := f.CreateBackend(ctx, cfg)
		assert.Error(t, err, "config %+v", cfg)
	}
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[memory jsonfile sqlite]")

	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		DataDir:      "/data",
		SQLiteDBPath: "/data/x.db",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: "/data/x.db", DataDirectory: "/data"}, cfg)
}

func TestBackendResultCloseNil(t *testing.T) {
	var r *BackendResult
	assert.NoError(t, r.Close())
	assert.NoError(t, (&BackendResult{}).Close())
}

func TestGetBackendTypeStrings(t *testing.T) {
	assert.Equal(t, []string{"memory", "jsonfile", "sqlite"}, GetBackendTypeStrings())
}
