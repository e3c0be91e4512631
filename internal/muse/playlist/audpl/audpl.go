package audpl

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/diamondburned/audpl"
	"github.com/diamondburned/kotone/internal/muse/playlist"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func init() {
	playlist.Register(".audpl", Parse, Write)
}

// Parse reads an Audacious playlist. Entries outside the local filesystem are
// skipped.
func Parse(path string) (*playlist.Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &playlist.IOError{Path: path, Err: err}
	}
	defer f.Close()

	p, err := audpl.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse audpl")
	}

	paths := make([]string, 0, len(p.Tracks))

	for _, track := range p.Tracks {
		if !strings.HasPrefix(track.URI, "file://") {
			log.Println("[audpl]: rogue path not in local fs:", track.URI)
			continue
		}

		paths = append(paths, strings.TrimPrefix(track.URI, "file://"))
	}

	pl := playlist.FromPaths(p.Name, paths)
	pl.Dir = filepath.Dir(path)

	return pl, nil
}

// Write writes the playlist as an Audacious playlist.
func Write(p *playlist.Playlist, path string) error {
	plist := audpl.Playlist{
		Name: p.Name,
		Tracks: lo.Map(p.Tracks, func(track playlist.Track, _ int) audpl.Track {
			return audpl.Track{
				Title: track.DisplayName,
				URI:   "file://" + track.Path,
			}
		}),
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create playlist file")
	}
	defer f.Close()

	buf := bufio.NewWriter(f)

	if err := plist.SaveTo(buf); err != nil {
		return errors.Wrap(err, "failed to write playlist")
	}

	if err := buf.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush")
	}

	return nil
}
