package assets

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Precipitator80/CS4102-Practical-1/engine/assets/loaders"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

type Loader interface {
	Load(path string) (*loaders.Resource, error)
	Unload(resource *loaders.Resource) error
}

type AssetInfo struct {
	Path       string
	Type       loaders.ResourceType
	LastLoaded time.Time
}

// AssetManager loads scene files and reports when a watched one changes on
// disk. Directories are watched rather than files so editors that save by
// rename-and-replace keep triggering events.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[loaders.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
	changes  chan string
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[loaders.ResourceType]Loader),
		fsnotify: fsWatch,
		// A single pending change is enough: bursts of writes collapse into one reload.
		changes: make(chan string, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	am.registerLoader(loaders.ResourceTypeScene, &loaders.SceneLoader{})
	return am, nil
}

func (am *AssetManager) registerLoader(assetType loaders.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Load reads an asset with the loader registered for its extension.
func (am *AssetManager) Load(path string) (*loaders.Resource, error) {
	assetType := determineAssetType(path)
	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for %s", path)
	}
	resource, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[clean(path)] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return resource, nil
}

func (am *AssetManager) Unload(resource *loaders.Resource) error {
	loader, ok := am.loaders[resource.Type]
	if !ok {
		return fmt.Errorf("no loader registered for %s", resource.FullPath)
	}
	return loader.Unload(resource)
}

// Watch starts reporting changes to path on Changes.
func (am *AssetManager) Watch(path string) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return core.ErrWatcherClosed
	}
	key := clean(path)
	if _, ok := am.assets[key]; !ok {
		am.assets[key] = AssetInfo{Path: path, Type: determineAssetType(path)}
	}
	if err := am.fsnotify.Add(filepath.Dir(key)); err != nil {
		return err
	}
	if !am.started {
		am.started = true
		go am.start()
	}
	return nil
}

// Changes delivers the path of every watched asset written to disk. It is
// closed by Close.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

func (am *AssetManager) Close() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return core.ErrWatcherClosed
	}
	am.isClosed = true
	close(am.done)
	if !am.started {
		close(am.changes)
		close(am.errors)
		return am.fsnotify.Close()
	}
	return nil
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !am.isWatched(e.Name) {
				continue
			}
			core.LogDebug("%s changed (%s)", e.Name, e.Op)
			select {
			case am.changes <- e.Name:
			default:
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)
			select {
			case am.errors <- err:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			close(am.errors)
			return
		}
	}
}

func (am *AssetManager) isWatched(path string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	_, ok := am.assets[clean(path)]
	return ok
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func determineAssetType(path string) loaders.ResourceType {
	switch filepath.Ext(path) {
	case ".toml":
		return loaders.ResourceTypeScene
	default:
		return loaders.ResourceTypeNone
	}
}
