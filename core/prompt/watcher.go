package prompt

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
)

// Watch reloads the renderer whenever a template file in its override
// directory changes. It blocks until ctx is cancelled. Renderers without
// an override directory return immediately.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	log := logging.New("prompt")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return err
	}
	log.Infof("Watching %s for prompt template changes", r.dir)

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".tmpl") {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		case <-reload:
			if err := r.Reload(); err != nil {
				log.Warnf("Prompt reload failed, keeping previous templates: %v", err)
				continue
			}
			log.Infof("Prompt templates reloaded")
		}
	}
}
