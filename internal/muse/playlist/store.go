package playlist

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Store owns the currently loaded playlist. The playlist is only ever replaced
// as a whole.
type Store struct {
	pl *Playlist
}

// NewStore creates a store holding an empty playlist.
func NewStore() *Store {
	return &Store{pl: &Playlist{}}
}

// Open scans dir and replaces the current playlist with the result. On error,
// the store is left holding an empty playlist for dir.
func (s *Store) Open(dir string) error {
	pl, err := Scan(dir)
	s.pl = pl
	return err
}

// Replace replaces the current playlist with the given one, reindexing its
// tracks.
func (s *Store) Replace(pl *Playlist) {
	replaced := *pl
	replaced.Tracks = make([]Track, len(pl.Tracks))

	for i, track := range pl.Tracks {
		track.Index = i
		replaced.Tracks[i] = track
	}

	s.pl = &replaced
}

// Dir returns the directory of the current playlist.
func (s *Store) Dir() string {
	return s.pl.Dir
}

// Playlist returns the current playlist. The caller must not modify it.
func (s *Store) Playlist() *Playlist {
	return s.pl
}

// Count returns the number of tracks.
func (s *Store) Count() int {
	return len(s.pl.Tracks)
}

// Get returns the track at index i. False is returned if i is out of bounds.
func (s *Store) Get(i int) (Track, bool) {
	if i < 0 || i >= len(s.pl.Tracks) {
		return Track{}, false
	}
	return s.pl.Tracks[i], true
}

// Tracks returns a copy of all tracks.
func (s *Store) Tracks() []Track {
	tracks := make([]Track, len(s.pl.Tracks))
	copy(tracks, s.pl.Tracks)
	return tracks
}

// Search returns the tracks whose display names fuzzily match the query, best
// match first. Matching is case-insensitive.
func (s *Store) Search(query string) []Track {
	if query == "" {
		return nil
	}

	names := make([]string, len(s.pl.Tracks))
	for i, track := range s.pl.Tracks {
		names[i] = track.DisplayName
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	tracks := make([]Track, len(ranks))
	for i, rank := range ranks {
		tracks[i] = s.pl.Tracks[rank.OriginalIndex]
	}

	return tracks
}
