package m3u

import (
	"bufio"
	"net/url"
	"os"
	"path/filepath"

	"github.com/diamondburned/kotone/internal/muse/playlist"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/ushis/m3u"
)

func init() {
	playlist.Register(".m3u", Parse, Write)
}

// Parse reads an m3u file. Relative entries are resolved against the
// playlist's directory.
func Parse(path string) (*playlist.Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &playlist.IOError{Path: path, Err: err}
	}
	defer f.Close()

	p, err := m3u.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse m3u")
	}

	dir := filepath.Dir(path)

	paths := make([]string, 0, len(p))
	for _, track := range p {
		if track.Path == "" {
			continue
		}

		trackPath := track.Path
		if !filepath.IsAbs(trackPath) {
			trackPath = filepath.Join(dir, trackPath)
		}

		paths = append(paths, trackPath)
	}

	pl := playlist.FromPaths(basename(path), paths)
	pl.Dir = dir

	return pl, nil
}

func basename(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	name = name[:len(name)-len(ext)]

	u, err := url.PathUnescape(name)
	if err != nil {
		return name
	}
	return u
}

// Write writes the playlist as an m3u file. Durations are unknown to the
// playlist and are written as -1.
func Write(p *playlist.Playlist, path string) error {
	plist := m3u.Playlist(lo.Map(p.Tracks, func(track playlist.Track, _ int) m3u.Track {
		return m3u.Track{
			Title: track.DisplayName,
			Path:  track.Path,
			Time:  -1,
		}
	}))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create playlist file")
	}
	defer f.Close()

	buf := bufio.NewWriter(f)

	if _, err := plist.WriteTo(buf); err != nil {
		return errors.Wrap(err, "failed to write playlist")
	}

	if err := buf.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush")
	}

	return nil
}
