package store

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch signals when the database files in the store directory are written,
// by this process or another. Bursts coalesce into one pending signal. The
// channel closes when ctx is done.
func (s Store) Watch(ctx context.Context, log logrus.FieldLogger) (<-chan struct{}, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.Dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !isDatabaseWrite(ev) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("store watcher")
			}
		}
	}()
	return out, nil
}

func isDatabaseWrite(ev fsnotify.Event) bool {
	if !strings.HasPrefix(filepath.Base(ev.Name), sqliteFileName) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
