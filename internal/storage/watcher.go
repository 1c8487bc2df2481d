package storage

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"walkwatch/internal/ui/preferences"
)

// Watcher reloads settings when the settings file changes on disk, so edits
// made outside the preferences window are picked up without a restart.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchSettings watches the settings file for the given app and invokes
// onChange with freshly loaded settings after each write.
func WatchSettings(appName string, log *zap.SugaredLogger, onChange func(preferences.Settings)) (*Watcher, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return nil, err
	}
	return WatchSettingsFile(configPath, log, onChange)
}

// WatchSettingsFile watches the given settings file. The parent directory is
// watched so the file may be created or replaced atomically.
func WatchSettingsFile(configPath string, log *zap.SugaredLogger, onChange func(preferences.Settings)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(configPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	watcher := &Watcher{watcher: fsWatcher, done: make(chan struct{})}

	go func() {
		for {
			select {
			case <-watcher.done:
				return
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if event.Name != configPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				settings, err := LoadSettingsFrom(configPath)
				if err != nil {
					log.Warnf("reload settings: %v", err)
					continue
				}
				onChange(settings)
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warnf("settings watcher: %v", err)
			}
		}
	}()

	return watcher, nil
}

// Close stops watching. Safe to call once.
func (watcher *Watcher) Close() error {
	close(watcher.done)
	return watcher.watcher.Close()
}
