package player

import (
	"context"

	"github.com/diamondburned/kotone/internal/muse"
	"github.com/diamondburned/kotone/internal/muse/albumart"
)

// Run is the controller's event loop. Engine events, commands queued with Do
// and directory changes are all handled here, one at a time. It returns when
// ctx is done, and must not be called again afterwards.
func (c *Controller) Run(ctx context.Context, events <-chan muse.Event) error {
	c.applyVolume()

	defer close(c.done)
	defer func() {
		if c.watcher != nil {
			c.watcher.Close()
			c.watcher = nil
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			c.HandleEvent(ev)
		case fn := <-c.commands:
			fn(c)
		case <-c.changes():
			c.reload()
		}
	}
}

// Do queues fn to be called on the goroutine running Run. It blocks if the
// queue is full. Once Run has returned, fn is dropped.
func (c *Controller) Do(fn func(*Controller)) {
	select {
	case c.commands <- fn:
	case <-c.done:
	}
}

// changes returns nil if no directory is watched, which blocks forever.
func (c *Controller) changes() <-chan struct{} {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Changes()
}

// HandleEvent applies an engine event. Media events of a track that was
// already replaced are dropped.
func (c *Controller) HandleEvent(ev muse.Event) {
	switch ev := ev.(type) {
	case muse.DurationChanged:
		c.duration = ev.Duration

	case muse.PositionChanged:
		c.position = ev.Position

	case muse.PlaybackStateChanged:
		c.playback = ev.State

	case muse.MediaStatusChanged:
		if ev.Load != c.load {
			return
		}

		c.status = ev.Status

		switch ev.Status {
		case muse.NoMedia, muse.InvalidMedia:
			c.cover = albumart.Default
		case muse.EndOfMedia:
			c.trackEnded()
			return
		}

	case muse.MetadataChanged:
		if ev.Load != c.load {
			return
		}

		c.metadata = ev.Metadata
		c.cover = albumart.Choose(ev.Metadata.CoverArt, ev.Metadata.Thumbnail)

	default:
		return
	}

	c.present()
}
