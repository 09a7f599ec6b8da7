package loader

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
)

// debounceWindow batches the burst of filesystem events an editor save or
// directory sync produces into a single rebuild.
const debounceWindow = 200 * time.Millisecond

// ReloadFunc is called after every reload attempt. On success snap is the
// new snapshot already swapped into the store; on failure snap is nil and
// the store keeps the previous snapshot.
type ReloadFunc func(snap *registry.Snapshot, diags []types.Diagnostic, err error)

// Watch rebuilds the registry whenever a definition file under dir changes
// and swaps the result into store atomically. In-flight compositions keep
// the snapshot pointer they started with; only new compositions observe
// the reload. Blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, store *registry.Store, onReload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			snap, diags, err := Load(dir)
			if err == nil {
				store.Swap(snap)
			}
			if onReload != nil {
				onReload(snap, diags, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onReload != nil {
				onReload(nil, nil, err)
			}
		}
	}
}

// relevantEvent filters out events for non-definition files, in particular
// our own cache writes.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := strings.ToLower(event.Name)
	return strings.HasSuffix(name, ".json") ||
		strings.HasSuffix(name, ".yaml") ||
		strings.HasSuffix(name, ".yml")
}
