package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Precipitator80/CS4102-Practical-1/engine/assets/loaders"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

func writeScene(t *testing.T, path string, yaw string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nyaw = "+yaw+"\n"), 0o644))
}

func TestAssetManager_Load(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	defer am.Close()

	path := filepath.Join(t.TempDir(), "scene.toml")
	writeScene(t, path, "0.5")

	res, err := am.Load(path)
	require.NoError(t, err)
	require.Equal(t, loaders.ResourceTypeScene, res.Type)
	require.Equal(t, 0.5, *res.Data.(*loaders.SceneFile).Camera.Yaw)
	require.NoError(t, am.Unload(res))

	_, err = am.Load(filepath.Join(t.TempDir(), "scene.json"))
	require.Error(t, err)
}

func TestAssetManager_WatchReportsWrites(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	writeScene(t, path, "0.5")
	require.NoError(t, am.Watch(path))

	// Files next to the watched one are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("\n"), 0o644))
	writeScene(t, path, "0.7")

	select {
	case changed := <-am.Changes():
		require.Equal(t, filepath.Base(path), filepath.Base(changed))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, am.Close())
	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-am.Changes():
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestAssetManager_CloseTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)

	require.NoError(t, am.Close())
	require.True(t, errors.Is(am.Close(), core.ErrWatcherClosed))
	require.True(t, errors.Is(am.Watch("scene.toml"), core.ErrWatcherClosed))
}
