package mpris

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/diamondburned/kotone/internal/muse"
	"github.com/diamondburned/kotone/internal/muse/albumart"
	"github.com/diamondburned/kotone/internal/player"
	"github.com/diamondburned/kotone/internal/state"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
)

type microsecond = int64

func toMicroseconds(d time.Duration) microsecond {
	return d.Microseconds()
}

func fromMicroseconds(us microsecond) time.Duration {
	return time.Duration(us) * time.Microsecond
}

func trackID(trackIx int) dbus.ObjectPath {
	if trackIx < 0 {
		return dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")
	}
	const trackIDfmt = tracksPath + "/%d"
	return dbus.ObjectPath(fmt.Sprintf(trackIDfmt, trackIx))
}

// playbackStatus converts the state into an MPRIS PlaybackStatus.
func playbackStatus(s muse.PlaybackState) string {
	switch s {
	case muse.Playing:
		return "Playing"
	case muse.Paused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// loopStatus converts the loop mode into MPRIS's LoopStatus and Shuffle pair.
// Sequential wraps around, so it is reported as looping the playlist.
func loopStatus(mode state.LoopMode) (string, bool) {
	switch mode {
	case state.RepeatOne:
		return "Track", false
	case state.Shuffle:
		return "Playlist", true
	default:
		return "Playlist", false
	}
}

// parseLoopStatus converts an MPRIS LoopStatus into a loop mode. Shuffling
// is kept unless a single track is to be looped.
func parseLoopStatus(status string, current state.LoopMode) (state.LoopMode, bool) {
	switch status {
	case "Track":
		return state.RepeatOne, true
	case "Playlist", "None":
		if current == state.Shuffle {
			return state.Shuffle, true
		}
		return state.Sequential, true
	default:
		return current, false
	}
}

// shuffleMode returns the loop mode after MPRIS sets Shuffle.
func shuffleMode(shuffle bool, current state.LoopMode) state.LoopMode {
	switch {
	case shuffle:
		return state.Shuffle
	case current == state.Shuffle:
		return state.Sequential
	default:
		return current
	}
}

// metadata describes the shown track. It is comparable, so that unchanged
// metadata is not sent again.
type metadata struct {
	index  int
	title  string
	album  string
	artist string
	lyric  string
	length time.Duration
	artURL string
}

func newMetadata(v player.View, artURL string) metadata {
	title := v.Title
	if title == "" {
		title = v.DisplayName
	}

	return metadata{
		index:  v.Index,
		title:  title,
		album:  v.Album,
		artist: v.Artist,
		lyric:  v.Lyric,
		length: v.Duration,
		artURL: artURL,
	}
}

func (m metadata) toMap() map[string]interface{} {
	if m.index < 0 {
		return noTrackMetadata
	}

	md := map[string]interface{}{
		"mpris:trackid": trackID(m.index),
		"mpris:length":  toMicroseconds(m.length),
		"xesam:title":   m.title,
		"xesam:album":   m.album,
		"xesam:asText":  m.lyric,
	}

	if m.artist != "" {
		md["xesam:artist"] = []string{m.artist}
	}

	if m.artURL != "" {
		md["mpris:artUrl"] = m.artURL
	}

	return md
}

var noTrackMetadata = map[string]interface{}{
	"mpris:trackid": trackID(-1),
}

type mprisPlayer struct {
	ctrl  Doer
	propQ chan propChange
	stop  chan struct{}

	// last sent, only touched by present
	status   string
	loop     string
	shuffle  bool
	volume   float64
	position time.Duration
	metadata metadata
	cover    []byte
	artURL   string
	sentAny  bool
}

type propChange struct {
	n string
	v interface{}
}

func newPlayer(ctrl Doer) *mprisPlayer {
	return &mprisPlayer{
		ctrl:  ctrl,
		propQ: make(chan propChange, 10),
		stop:  make(chan struct{}),
	}
}

func (p *mprisPlayer) start(props *prop.Properties) {
	go func() {
		for {
			select {
			case <-p.stop:
				return
			case send := <-p.propQ:
				if err := props.Set(playerID, send.n, dbus.MakeVariant(send.v)); err != nil {
					log.Println("MPRIS set prop failed:", err)
				}
			}
		}
	}()
}

// Destroy stops background workers.
func (p *mprisPlayer) Destroy() {
	close(p.stop)

	if p.artURL != "" {
		os.Remove(artPath(p.cover))
	}
}

// sendProp queues the prop to be sent through DBus. It pops off the first item
// of the queue if it's full.
func (p *mprisPlayer) sendProp(n string, v interface{}) {
	prop := propChange{n, v}

	for {
		select {
		case <-p.stop:
			return
		case p.propQ <- prop:
			return
		default:
			log.Println("Warning: prop send buffer overflow.")

			// Try and pop the earliest prop out.
			select {
			case <-p.propQ:
			default:
			}
		}
	}
}

// present sends the properties that changed since the last view.
func (p *mprisPlayer) present(v player.View) {
	first := !p.sentAny
	p.sentAny = true

	if status := playbackStatus(v.Playback); first || status != p.status {
		p.status = status
		p.sendProp("PlaybackStatus", status)
	}

	loop, shuffle := loopStatus(v.LoopMode)
	if first || loop != p.loop {
		p.loop = loop
		p.sendProp("LoopStatus", loop)
	}
	if first || shuffle != p.shuffle {
		p.shuffle = shuffle
		p.sendProp("Shuffle", shuffle)
	}

	if volume := float64(v.Volume) / 100; first || volume != p.volume {
		p.volume = volume
		p.sendProp("Volume", volume)
	}

	if pos := v.Position.Truncate(time.Second); first || pos != p.position {
		p.position = pos
		p.sendProp("Position", toMicroseconds(v.Position))
	}

	if !bytes.Equal(v.Cover.Data, p.cover) {
		p.updateArt(v.Cover)
	}

	if md := newMetadata(v, p.artURL); first || md != p.metadata {
		p.metadata = md
		p.sendProp("Metadata", md.toMap())
	}
}

// updateArt writes the cover into a file for mpris:artUrl. The built-in default
// is not exported.
func (p *mprisPlayer) updateArt(img albumart.Image) {
	if p.artURL != "" {
		os.Remove(artPath(p.cover))
	}

	p.cover = img.Data
	p.artURL = ""

	if img.Source == albumart.FromDefault || !img.IsValid() {
		return
	}

	path := artPath(img.Data)

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Println("failed to make album art directory:", err)
		return
	}

	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		log.Println("failed to write album art:", err)
		return
	}

	p.artURL = "file://" + path
}

// artPath returns a path unique to the image. Players cache art by URL.
func artPath(data []byte) string {
	h := fnv.New64a()
	h.Write(data)

	name := fmt.Sprintf("cover-%d-%x", os.Getpid(), h.Sum64())
	return filepath.Join(os.TempDir(), "kotone", "mpris", name)
}

// DBus methods.

func (p *mprisPlayer) Next() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) { c.Next() })
	return nil
}

func (p *mprisPlayer) Previous() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) { c.Previous() })
	return nil
}

func (p *mprisPlayer) Pause() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) {
		if c.Playback() == muse.Playing {
			c.PlayPause()
		}
	})
	return nil
}

func (p *mprisPlayer) Play() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) {
		if c.Playback() != muse.Playing {
			c.PlayPause()
		}
	})
	return nil
}

func (p *mprisPlayer) Stop() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) { c.Stop() })
	return nil
}

func (p *mprisPlayer) PlayPause() *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) { c.PlayPause() })
	return nil
}

func (p *mprisPlayer) Seek(us microsecond) *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) { c.SeekBy(fromMicroseconds(us)) })
	return nil
}

func (p *mprisPlayer) SetPosition(id dbus.ObjectPath, us microsecond) *dbus.Error {
	p.ctrl.Do(func(c *player.Controller) {
		// Seek if the track ID is not stale.
		if trackID(c.Current()) == id {
			c.Seek(fromMicroseconds(us))
		}
	})
	return nil
}

func (p *mprisPlayer) OpenUri(uri string) *dbus.Error {
	return errUnimplemented
}

// Writable property callbacks.

func (p *mprisPlayer) setLoopStatus(change *prop.Change) *dbus.Error {
	status, ok := change.Value.(string)
	if !ok {
		return errInvalidValue
	}

	p.ctrl.Do(func(c *player.Controller) {
		if mode, ok := parseLoopStatus(status, c.LoopMode()); ok {
			c.SetLoopMode(mode)
		}
	})
	return nil
}

func (p *mprisPlayer) setShuffle(change *prop.Change) *dbus.Error {
	shuffle, ok := change.Value.(bool)
	if !ok {
		return errInvalidValue
	}

	p.ctrl.Do(func(c *player.Controller) {
		c.SetLoopMode(shuffleMode(shuffle, c.LoopMode()))
	})
	return nil
}

func (p *mprisPlayer) setVolume(change *prop.Change) *dbus.Error {
	volume, ok := change.Value.(float64)
	if !ok {
		return errInvalidValue
	}

	level := int(math.Round(volume * 100))
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	p.ctrl.Do(func(c *player.Controller) {
		if err := c.SetVolume(level); err != nil {
			log.Println("failed to set volume from MPRIS:", err)
		}
	})
	return nil
}
