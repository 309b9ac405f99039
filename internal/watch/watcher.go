package watch

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/logger"
)

// Watcher reports changes to exercise source files as a stream of
// notifications the watch model consumes one at a time.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	errs    chan error
}

// NewWatcher watches root and all its subdirectories. fsnotify does not
// recurse, so every directory is added explicitly.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("exercise file changed", "path", event.Name, "op", event.Op.String())
			// Collapse bursts: one pending notification is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// Changes returns the notification channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errs returns the watcher error channel.
func (w *Watcher) Errs() <-chan error {
	return w.errs
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
