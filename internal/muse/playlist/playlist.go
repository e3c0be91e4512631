package playlist

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Reader reads a playlist file.
type Reader func(path string) (*Playlist, error)

// Writer writes the playlist into the file at path.
type Writer func(pl *Playlist, path string) error

type codec struct {
	read  Reader
	write Writer
}

var codecs = map[string]codec{}

// SupportedExtensions returns the sorted list of playlist file extensions that
// can be read and written.
func SupportedExtensions() []string {
	var exts = make([]string, 0, len(codecs))
	for ext := range codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Register registers a playlist codec for the given file extension, including
// the leading dot.
func Register(fileExt string, r Reader, w Writer) {
	codecs[fileExt] = codec{r, w}
}

// ParseFile reads a playlist file using the codec registered for its
// extension.
func ParseFile(path string) (*Playlist, error) {
	c, ok := codecs[filepath.Ext(path)]
	if !ok {
		return nil, errors.Errorf("unknown playlist format %q, expected one of %v", filepath.Ext(path), SupportedExtensions())
	}

	return c.read(path)
}

// WriteFile writes the playlist to path using the codec registered for its
// extension.
func WriteFile(pl *Playlist, path string) error {
	c, ok := codecs[filepath.Ext(path)]
	if !ok {
		return errors.Errorf("unknown playlist format %q, expected one of %v", filepath.Ext(path), SupportedExtensions())
	}

	return c.write(pl, path)
}

// Playlist is an ordered list of tracks. A Playlist is never modified in place
// once built; opening another directory replaces it.
type Playlist struct {
	Name   string
	Dir    string
	Tracks []Track
}

// FromPaths builds a playlist out of the given file paths, assigning indices
// in order.
func FromPaths(name string, paths []string) *Playlist {
	pl := &Playlist{
		Name:   name,
		Tracks: make([]Track, len(paths)),
	}

	for i, path := range paths {
		pl.Tracks[i] = NewTrack(i, path)
	}

	return pl
}

// Paths returns the file path of every track.
func (pl *Playlist) Paths() []string {
	paths := make([]string, len(pl.Tracks))
	for i, track := range pl.Tracks {
		paths[i] = track.Path
	}
	return paths
}

// Track is a single playable file inside a playlist. Its identity is its
// position.
type Track struct {
	Index       int
	Path        string
	DisplayName string
}

// NewTrack creates a track at index i whose display name is the file name.
func NewTrack(i int, path string) Track {
	return Track{
		Index:       i,
		Path:        path,
		DisplayName: filepath.Base(path),
	}
}

// ErrIO matches any *IOError through errors.Is.
var ErrIO = errors.New("i/o error")

// IOError is returned when a directory or file could not be accessed.
type IOError struct {
	Path string
	Err  error
}

func (err *IOError) Error() string {
	return "failed to access " + err.Path + ": " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// Is reports whether target is ErrIO.
func (err *IOError) Is(target error) bool {
	return target == ErrIO
}
