package player

import (
	"time"

	"github.com/diamondburned/kotone/internal/durafmt"
	"github.com/diamondburned/kotone/internal/muse"
	"github.com/diamondburned/kotone/internal/muse/albumart"
	"github.com/diamondburned/kotone/internal/state"
)

// View is everything a presenter shows.
type View struct {
	Index       int // -1 if nothing is selected
	DisplayName string
	Elapsed     string // mm:ss
	Total       string // mm:ss
	Lyric       string

	Position time.Duration
	Duration time.Duration

	LoopMode state.LoopMode
	Volume   int
	Muted    bool

	Playback muse.PlaybackState
	Status   muse.MediaStatus

	Cover  albumart.Image
	Title  string
	Artist string
	Album  string
}

// View returns the current view.
func (c *Controller) View() View {
	v := View{
		Index:    c.nav.Current(),
		Elapsed:  durafmt.Clock(c.position),
		Total:    durafmt.Clock(c.duration),
		Lyric:    c.lyrics.Text(c.position),
		Position: c.position,
		Duration: c.duration,
		LoopMode: c.nav.LoopMode(),
		Volume:   c.volume.Volume(),
		Muted:    c.volume.Muted(),
		Playback: c.playback,
		Status:   c.status,
		Cover:    c.cover,
		Title:    c.metadata.Title,
		Artist:   c.metadata.Artist,
		Album:    c.metadata.Album,
	}

	if track, ok := c.store.Get(v.Index); ok {
		v.DisplayName = track.DisplayName
	}

	return v
}

func (c *Controller) present() {
	if len(c.presenters) == 0 {
		return
	}

	v := c.View()
	for _, p := range c.presenters {
		p.Present(v)
	}
}
