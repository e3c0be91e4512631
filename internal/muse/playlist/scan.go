package playlist

import (
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
}

// IsAudio returns true if the path has one of the supported audio extensions,
// compared case-insensitively.
func IsAudio(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan enumerates the audio files directly inside dir. Subdirectories are not
// descended into. A missing directory yields an empty playlist; any other
// access failure is returned as an *IOError.
func Scan(dir string) (*Playlist, error) {
	pl := &Playlist{Dir: dir}
	if dir == "" {
		return pl, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return pl, &IOError{Path: dir, Err: err}
	}

	pl.Dir = abs
	pl.Name = filepath.Base(abs)

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return pl, nil
		}
		return pl, &IOError{Path: abs, Err: err}
	}

	for _, entry := range entries {
		if !IsAudio(entry.Name()) {
			continue
		}

		path := filepath.Join(abs, entry.Name())

		if !isFile(entry, path) {
			continue
		}

		pl.Tracks = append(pl.Tracks, NewTrack(len(pl.Tracks), path))
	}

	return pl, nil
}

func isFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}

	// Follow the link.
	s, err := os.Stat(path)
	return err == nil && s.Mode().IsRegular()
}
