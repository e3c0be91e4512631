// Package player ties the playlist, navigation, lyrics and volume state to a
// media engine. All of its state is owned by a single goroutine running Run.
package player

import (
	"log"
	"time"

	"github.com/diamondburned/kotone/internal/lyrics"
	"github.com/diamondburned/kotone/internal/muse"
	"github.com/diamondburned/kotone/internal/muse/albumart"
	"github.com/diamondburned/kotone/internal/muse/playlist"
	"github.com/diamondburned/kotone/internal/session"
	"github.com/diamondburned/kotone/internal/state"
	"github.com/diamondburned/kotone/internal/volume"
	"github.com/pkg/errors"
)

// ErrNoMatch is returned by PlayMatch if no track matches the query.
var ErrNoMatch = errors.New("no matching track")

// Engine decodes and outputs audio. Its events are fed back through Run or
// HandleEvent.
type Engine interface {
	Play(path string) error
	Resume() error
	Pause() error
	Stop() error
	SetPosition(pos time.Duration) error
	SetOutputVolume(gain float64) error
}

// Presenter displays the controller's state. Present is called from the
// controller's goroutine and must not block for long.
type Presenter interface {
	Present(View)
}

// Options configures a Controller.
type Options struct {
	// Volume is the initial volume in [0, 100].
	Volume int
	// Watch makes the controller reload the opened directory when audio files
	// are added to or removed from it.
	Watch bool
}

// Controller is the playback session.
type Controller struct {
	store  *playlist.Store
	nav    *state.Navigator
	volume *volume.Controller
	lyrics *lyrics.Timeline
	engine Engine

	presenters []Presenter
	commands   chan func(*Controller)
	// done is closed once Run returns.
	done chan struct{}

	watch   bool
	watcher *playlist.Watcher

	// load counts the successful Engine.Play calls. Media events tagged with
	// an older load belong to a track that was already replaced.
	load     uint64
	status   muse.MediaStatus
	playback muse.PlaybackState
	position time.Duration
	duration time.Duration
	metadata muse.Metadata
	cover    albumart.Image
}

// New creates a controller driving the given engine. Nothing is sent to the
// engine until an operation is called or Run is started.
func New(engine Engine, opts Options, presenters ...Presenter) *Controller {
	store := playlist.NewStore()

	return &Controller{
		store:      store,
		nav:        state.NewNavigator(store),
		volume:     volume.New(opts.Volume),
		lyrics:     lyrics.Empty,
		engine:     engine,
		presenters: presenters,
		commands:   make(chan func(*Controller), 16),
		done:       make(chan struct{}),
		watch:      opts.Watch,
		cover:      albumart.Default,
	}
}

// AddPresenter adds a presenter that will receive all future views.
func (c *Controller) AddPresenter(p Presenter) {
	c.presenters = append(c.presenters, p)
}

// Restore opens the session's directory and selects its track without playing
// it. An index that no longer fits the directory leaves nothing selected.
func (c *Controller) Restore(s session.Session) error {
	err := c.OpenDirectory(s.Dir)

	if s.Index >= 0 {
		if err := c.nav.Select(s.Index); err != nil {
			log.Println("failed to restore the last track:", err)
		}
		c.present()
	}

	return err
}

// Snapshot returns the session to be persisted.
func (c *Controller) Snapshot() session.Session {
	return session.Session{
		Dir:   c.store.Dir(),
		Index: c.nav.Current(),
	}
}

// OpenDirectory replaces the playlist with the audio files in dir. Nothing is
// selected afterwards. The engine keeps playing whatever it was playing.
func (c *Controller) OpenDirectory(dir string) error {
	err := c.store.Open(dir)
	c.nav.Reset()

	if c.watch {
		c.rewatch()
	}

	c.present()
	return err
}

func (c *Controller) reload() {
	if err := c.store.Open(c.store.Dir()); err != nil {
		log.Println("failed to reload directory:", err)
	}
	c.nav.Reset()
	c.present()
}

func (c *Controller) rewatch() {
	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}

	if c.store.Dir() == "" {
		return
	}

	w, err := playlist.Watch(c.store.Dir())
	if err != nil {
		log.Println("failed to watch directory:", err)
		return
	}

	c.watcher = w
}

// Current returns the selected index, or -1.
func (c *Controller) Current() int {
	return c.nav.Current()
}

// LoopMode returns the current loop mode.
func (c *Controller) LoopMode() state.LoopMode {
	return c.nav.LoopMode()
}

// Playback returns the last playback state reported by the engine.
func (c *Controller) Playback() muse.PlaybackState {
	return c.playback
}

// Tracks returns a copy of the current playlist's tracks.
func (c *Controller) Tracks() []playlist.Track {
	return c.store.Tracks()
}

// PlayIndex selects and plays the i-th track.
func (c *Controller) PlayIndex(i int) error {
	if err := c.nav.Select(i); err != nil {
		return err
	}

	c.play()
	return nil
}

// PlayMatch plays the track whose name best matches the query.
func (c *Controller) PlayMatch(query string) error {
	matches := c.store.Search(query)
	if len(matches) == 0 {
		return errors.Wrapf(ErrNoMatch, "%q", query)
	}

	return c.PlayIndex(matches[0].Index)
}

// Next plays the next track according to the loop mode.
func (c *Controller) Next() {
	if _, ok := c.nav.Next(); ok {
		c.play()
	}
}

// Previous plays the previous track according to the loop mode.
func (c *Controller) Previous() {
	if _, ok := c.nav.Previous(); ok {
		c.play()
	}
}

// PlayPause toggles playback. With nothing selected, the first track is
// played. A track that failed to load or was unloaded is played again.
func (c *Controller) PlayPause() {
	switch {
	case c.store.Count() == 0:
		return
	case c.nav.IsIdle():
		c.PlayIndex(0)
	case c.playback == muse.Playing:
		if err := c.engine.Pause(); err != nil {
			log.Println("failed to pause:", err)
		}
	case c.status == muse.NoMedia || c.status == muse.InvalidMedia:
		c.play()
	default:
		if err := c.engine.Resume(); err != nil {
			log.Println("failed to resume:", err)
		}
	}
}

// Stop unloads the current track. The selection is kept, so PlayPause plays it
// again from the start.
func (c *Controller) Stop() {
	if err := c.engine.Stop(); err != nil {
		log.Println("failed to stop:", err)
	}

	c.lyrics = lyrics.Empty
	c.position = 0
	c.present()
}

// CycleLoopMode switches to the next loop mode.
func (c *Controller) CycleLoopMode() state.LoopMode {
	mode := c.nav.CycleLoopMode()
	c.present()
	return mode
}

// SetLoopMode sets the loop mode.
func (c *Controller) SetLoopMode(mode state.LoopMode) {
	c.nav.SetLoopMode(mode)
	c.present()
}

// Seek moves the playback position of the loaded track. The position is
// clamped to the track's duration once that is known.
func (c *Controller) Seek(pos time.Duration) {
	if pos < 0 {
		pos = 0
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}

	if err := c.engine.SetPosition(pos); err != nil {
		log.Println("failed to seek:", err)
		return
	}

	c.position = pos
	c.present()
}

// SeekBy seeks relative to the current position.
func (c *Controller) SeekBy(offset time.Duration) {
	c.Seek(c.position + offset)
}

// SetVolume sets the volume in [0, 100]. Zero mutes.
func (c *Controller) SetVolume(v int) error {
	if err := c.volume.SetVolume(v); err != nil {
		return err
	}

	c.applyVolume()
	return nil
}

// StepVolume changes the volume by delta, clamped to [0, 100].
func (c *Controller) StepVolume(delta int) {
	c.volume.Step(delta)
	c.applyVolume()
}

// ToggleMute mutes, or restores the volume from before muting.
func (c *Controller) ToggleMute() {
	c.volume.ToggleMute()
	c.applyVolume()
}

func (c *Controller) applyVolume() {
	if err := c.engine.SetOutputVolume(c.volume.Gain()); err != nil {
		log.Println("failed to set volume:", err)
	}
	c.present()
}

// play loads the selected track into the engine.
func (c *Controller) play() {
	track, ok := c.store.Get(c.nav.Current())
	if !ok {
		return
	}

	c.position = 0
	c.duration = 0
	c.metadata = muse.Metadata{}
	c.cover = albumart.Default
	c.loadLyrics(track.Path)

	if err := c.engine.Play(track.Path); err != nil {
		log.Printf("failed to play %q: %v", track.Path, err)
		c.status = muse.InvalidMedia
		c.present()
		return
	}

	c.load++
	c.status = muse.Loading
	c.present()
}

func (c *Controller) loadLyrics(audioPath string) {
	t, err := lyrics.Load(audioPath)
	if err != nil {
		log.Println("failed to load lyrics:", err)
	}
	c.lyrics = t
}

// trackEnded advances after the engine finished a track. Playback is paused if
// there is nowhere to go.
func (c *Controller) trackEnded() {
	if _, ok := c.nav.TrackEnded(); !ok {
		if err := c.engine.Pause(); err != nil {
			log.Println("failed to pause:", err)
		}
		c.present()
		return
	}

	c.play()
}
