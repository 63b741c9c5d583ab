// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a config file whenever it changes and sends the
// result on C. Files that fail to parse are logged and skipped.
type Watcher struct {
	// C receives each successfully re-read config. Only the latest
	// pending config is kept if the receiver falls behind.
	C <-chan *Config

	filename string
	watcher  *fsnotify.Watcher
	out      chan *Config
	done     chan struct{}
}

// Watch starts watching filename. The directory is watched rather
// than the file, since editors often replace the file on save.
func Watch(filename string) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	out := make(chan *Config, 1)
	w := &Watcher{C: out, filename: abs, watcher: fw, out: out, done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Open(w.filename)
			if err != nil {
				slog.Error("config: reload", "err", err)
				continue
			}
			slog.Info("config: reloaded", "file", w.filename)
			w.send(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config: watcher", "err", err)
		}
	}
}

// send replaces any pending config with cfg.
func (w *Watcher) send(cfg *Config) {
	select {
	case <-w.out:
	default:
	}
	w.out <- cfg
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
