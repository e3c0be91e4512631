package muse

import (
	"time"

	"github.com/diamondburned/kotone/internal/muse/albumart"
)

// PlaybackState is the transport state reported by the engine.
type PlaybackState uint8

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// MediaStatus describes the media currently loaded into the engine.
type MediaStatus uint8

const (
	NoMedia MediaStatus = iota
	Loading
	Loaded
	InvalidMedia
	EndOfMedia
)

func (s MediaStatus) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case InvalidMedia:
		return "invalid media"
	case EndOfMedia:
		return "end of media"
	default:
		return "no media"
	}
}

// Metadata is what the engine knows about the loaded track. Empty fields are
// unknown.
type Metadata struct {
	Title     string
	Album     string
	Artist    string
	CoverArt  albumart.Image
	Thumbnail albumart.Image
}

// Event is any of the *Changed types in this file.
type Event interface {
	event()
}

// DurationChanged is sent once the length of the loaded track is known.
type DurationChanged struct {
	Duration time.Duration
}

// PositionChanged is sent as playback progresses.
type PositionChanged struct {
	Position time.Duration
}

// PlaybackStateChanged is sent when playback starts, pauses or stops.
type PlaybackStateChanged struct {
	State PlaybackState
}

// MediaStatusChanged is sent when the loaded media changes status. Load is the
// number of the Play call that the status belongs to, counting from 1, or 0 if
// nothing was ever played.
type MediaStatusChanged struct {
	Status MediaStatus
	Load   uint64
}

// MetadataChanged is sent after a track is loaded.
type MetadataChanged struct {
	Metadata Metadata
	Load     uint64
}

func (DurationChanged) event()      {}
func (PositionChanged) event()      {}
func (PlaybackStateChanged) event() {}
func (MediaStatusChanged) event()   {}
func (MetadataChanged) event()      {}

// ReadMetadata reads the tags, the embedded cover art and the folder thumbnail
// of the track at path. Tag errors are ignored, since many files simply have
// none.
func ReadMetadata(path string) Metadata {
	var metadata Metadata

	if tags, err := albumart.ReadTags(path); err == nil {
		metadata.Title = tags.Title
		metadata.Album = tags.Album
		metadata.Artist = tags.Artist
		metadata.CoverArt = tags.Cover
	}

	metadata.Thumbnail = albumart.FolderImage(path)
	return metadata
}
