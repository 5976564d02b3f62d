package filemanager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	URL   string `yaml:"url"`
	Port  int    `yaml:"port"`
	Dirty bool   `yaml:"dirty"`
}

func TestManager_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "davbridge.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()

	require.NoError(t, mgr.Write(ctx, path, &testDoc{URL: "https://dav.example.com", Port: 8080}))

	doc, info, err := mgr.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "https://dav.example.com", doc.URL)
	assert.Equal(t, 8080, doc.Port)
	assert.Equal(t, path, info.Path)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestManager_ReadMissing(t *testing.T) {
	mgr := NewManager[testDoc]()
	_, _, err := mgr.Read(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestManager_Validator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: x\n"), 0o600))

	rejected := errors.New("rejected")
	mgr := NewManager[testDoc](WithValidator(func(data []byte) error {
		return rejected
	}))

	_, _, err := mgr.Read(context.Background(), path)
	assert.ErrorIs(t, err, rejected)
}

func TestManager_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()

	t.Run("creates missing file", func(t *testing.T) {
		require.NoError(t, mgr.Update(ctx, path, func(doc *testDoc) error {
			doc.URL = "http://origin"
			return nil
		}))

		doc, _, err := mgr.Read(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "http://origin", doc.URL)
	})

	t.Run("modifies existing file", func(t *testing.T) {
		require.NoError(t, mgr.Update(ctx, path, func(doc *testDoc) error {
			doc.Dirty = true
			return nil
		}))

		doc, _, err := mgr.Read(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "http://origin", doc.URL)
		assert.True(t, doc.Dirty)
	})

	t.Run("propagates callback errors", func(t *testing.T) {
		boom := errors.New("boom")
		err := mgr.Update(ctx, path, func(doc *testDoc) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	mgr := NewManager[testDoc]()
	ctx := context.Background()
	require.NoError(t, mgr.Write(ctx, path, &testDoc{}))

	const workers = 5
	const increments = 4

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				if err := mgr.Update(ctx, path, func(doc *testDoc) error {
					doc.Port++
					return nil
				}); err != nil {
					t.Errorf("Update failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	doc, _, err := mgr.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, workers*increments, doc.Port)
}
