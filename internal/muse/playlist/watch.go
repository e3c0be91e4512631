package playlist

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// watchDelay is how long the watcher waits for the directory to settle before
// reporting a change. Copying an album produces a burst of events.
const watchDelay = 500 * time.Millisecond

// Watcher reports changes to the set of audio files inside a directory.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	stop    chan struct{}
	delay   time.Duration
}

// Watch starts watching dir. The returned watcher must be closed.
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch %q", dir)
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		delay:   watchDelay,
	}

	go w.run()

	return w, nil
}

// Changes returns a channel that receives a value once the directory's audio
// files have changed and settled. Bursts are coalesced into one value.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fsw.Close()
}

const watchedOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) run() {
	var settle <-chan time.Time

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&watchedOps == 0 || !IsAudio(ev.Name) {
				continue
			}
			settle = time.After(w.delay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Println("directory watcher error:", err)

		case <-settle:
			settle = nil

			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
